package dto

// StudentForm carries the form fields shared by registration and edit.
// Required-field enforcement happens in the service layer so the first
// missing field can be named in the validation error.
type StudentForm struct {
	Name          string `form:"name" json:"name"`
	Surname       string `form:"surname" json:"surname"`
	FatherName    string `form:"father_name" json:"father_name"`
	FatherSurname string `form:"father_surname" json:"father_surname"`
	MotherName    string `form:"mother_name" json:"mother_name"`
	MotherSurname string `form:"mother_surname" json:"mother_surname"`
	Phone         string `form:"phone" json:"phone"`
	School        string `form:"school" json:"school"`
	Grade         string `form:"grade" json:"grade"`
	Address       string `form:"address" json:"address"`
	Birthday      string `form:"birthday" json:"birthday"` // YYYY-M-D
	Language      string `form:"language" json:"language"`
}

// StudentResponse represents a student in API responses
type StudentResponse struct {
	ID            int64  `json:"id" example:"1"`
	Name          string `json:"name" example:"Ayse"`
	Surname       string `json:"surname" example:"Yilmaz"`
	FatherName    string `json:"father_name,omitempty"`
	FatherSurname string `json:"father_surname,omitempty"`
	MotherName    string `json:"mother_name,omitempty"`
	MotherSurname string `json:"mother_surname,omitempty"`
	Phone         string `json:"phone"`
	School        string `json:"school"`
	Grade         string `json:"grade"`
	Address       string `json:"address"`
	Birthday      string `json:"birthday" example:"2010-09-05"`
	Photo         string `json:"photo" example:"7f6c8f3a-0e55-4f35-bb1d-2a1e8360b9a7.jpg"`
	PhotoURL      string `json:"photo_url,omitempty" example:"/api/v1/photos/7f6c8f3a-0e55-4f35-bb1d-2a1e8360b9a7.jpg"`
	Language      string `json:"language"`
	ExamID        int64  `json:"exam_id" example:"1"`
}

// DeletedStudentResponse confirms a deletion with display data
type DeletedStudentResponse struct {
	ID      int64  `json:"id" example:"1"`
	Name    string `json:"name" example:"Ayse"`
	Surname string `json:"surname" example:"Yilmaz"`
}

// BadgeResponse is the single-student badge view
type BadgeResponse struct {
	Student StudentResponse `json:"student"`
	Exam    ExamResponse    `json:"exam"`
}
