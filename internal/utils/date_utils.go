package utils

import "time"

// LoadLocation retorna o fuso configurado (DB_TIMEZONE).
// Deve ser usada em todo o projeto para obter o fuso padrão, garantindo
// consistência nas operações de data, como o corte de "enviadas neste mês".
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback para UTC se não conseguir carregar a localização
		return time.UTC
	}
	return loc
}

// StartOfMonth retorna o primeiro instante do mês de t no fuso informado
func StartOfMonth(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// SameMonth indica se a e b caem no mesmo mês do calendário no fuso informado
func SameMonth(a, b time.Time, loc *time.Location) bool {
	return StartOfMonth(a, loc).Equal(StartOfMonth(b, loc))
}
