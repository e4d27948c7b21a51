package entities

// NewViewer contém os dados do formulário de criação de conta de visualizador
type NewViewer struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	SurveyYear      int    `json:"survey_year" validate:"required,gte=2020,lte=2030"`
}

// ViewerAccount é o resultado da criação atômica de login + pesquisa
type ViewerAccount struct {
	UserID   string `json:"user_id"`
	SurveyID string `json:"survey_id"`
	Email    string `json:"email"`
}
