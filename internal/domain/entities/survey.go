package entities

import (
	"time"
)

// SurveyResponse representa a resposta de um usuário para a pesquisa de um ano
type SurveyResponse struct {
	Base
	UserID      string     `json:"user_id"`
	Year        int        `json:"year"`
	Record      Record     `json:"-"`
	CompletedAt *time.Time `json:"completed_at"`
}

// Completed indica se a resposta já foi enviada (e portanto não pode mais ser editada)
func (s *SurveyResponse) Completed() bool {
	return s != nil && s.CompletedAt != nil
}

// SurveyStatus resume a situação de uma pesquisa de um usuário em um ano
type SurveyStatus struct {
	Year        int        `json:"year"`
	Completed   bool       `json:"completed"`
	Started     bool       `json:"started"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
