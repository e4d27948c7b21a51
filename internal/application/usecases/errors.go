package usecases

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated indica que a operação exige um usuário autenticado
	ErrUnauthenticated = errors.New("user is not authenticated")
	// ErrMissingYear indica que o ano da pesquisa não foi informado
	ErrMissingYear = errors.New("survey year is required")
	// ErrSubmissionInFlight indica que já existe um envio em andamento para o mesmo usuário e ano
	ErrSubmissionInFlight = errors.New("a submission for this survey is already in progress")
	// ErrSurveyCompleted indica que a pesquisa já foi enviada e não pode mais ser alterada
	ErrSurveyCompleted = errors.New("survey has already been submitted")
	// ErrStaleResult indica que uma consulta mais recente substituiu esta
	ErrStaleResult = errors.New("result superseded by a newer request")
	// ErrUnknownField indica um campo que não existe no questionário do ano
	ErrUnknownField = errors.New("unknown survey field")
	// ErrFieldNotVisible indica que o papel do usuário não pode ver o campo
	ErrFieldNotVisible = errors.New("field is not visible for this role")
	// ErrNotNumeric indica que estatísticas foram pedidas para um campo não numérico
	ErrNotNumeric = errors.New("field is not numeric")
)

// SubmissionError envolve a falha ao gravar a resposta principal.
// A falha da projeção nunca é reportada por aqui.
type SubmissionError struct {
	Year int
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to save survey %d: %v", e.Year, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
