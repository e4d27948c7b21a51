package entities

import "sort"

// PresentYear é o valor canônico para datas "em andamento" (armazenadas como "present")
const PresentYear = 9999

// Kind identifica a forma canônica de um campo da pesquisa
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindSet
	KindAllocation
	KindTeam
	KindYear
	KindFlag
)

var kindNames = map[Kind]string{
	KindText:       "text",
	KindNumber:     "number",
	KindSet:        "set",
	KindAllocation: "allocation",
	KindTeam:       "team",
	KindYear:       "year",
	KindFlag:       "flag",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalText permite serializar o tipo do campo como string no JSON
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// TeamMember representa um integrante da equipe do fundo
type TeamMember struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role" validate:"required"`
	Experience string `json:"experience,omitempty"`
}

// Value é a união tipada de um campo já normalizado.
// Apenas o membro correspondente a Kind é significativo.
type Value struct {
	Kind       Kind
	Text       string
	Number     float64
	Set        []string
	Allocation map[string]float64
	Team       []TeamMember
	Flag       bool
}

func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }

func YearValue(n float64) Value { return Value{Kind: KindYear, Number: n} }

func FlagValue(b bool) Value { return Value{Kind: KindFlag, Flag: b} }

func SetValue(s []string) Value { return Value{Kind: KindSet, Set: s} }

func AllocationValue(m map[string]float64) Value { return Value{Kind: KindAllocation, Allocation: m} }

func TeamValue(t []TeamMember) Value { return Value{Kind: KindTeam, Team: t} }

// Interface devolve o valor em sua forma Go nativa (usada pelo validador e pelo JSON)
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber, KindYear:
		return v.Number
	case KindSet:
		return v.Set
	case KindAllocation:
		return v.Allocation
	case KindTeam:
		return v.Team
	case KindFlag:
		return v.Flag
	}
	return nil
}

// Record é a resposta canônica de uma pesquisa, independente da codificação armazenada
type Record struct {
	Year   int              `json:"year"`
	Fields map[string]Value `json:"-"`
}

// NewRecord cria um registro vazio para o ano informado
func NewRecord(year int) Record {
	return Record{Year: year, Fields: make(map[string]Value)}
}

// Set grava um campo no registro
func (r *Record) Set(name string, v Value) {
	if r.Fields == nil {
		r.Fields = make(map[string]Value)
	}
	r.Fields[name] = v
}

// Has indica se o campo está presente
func (r Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// Get retorna o valor bruto do campo
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// Text retorna o campo texto ou "" se ausente
func (r Record) Text(name string) string {
	if v, ok := r.Fields[name]; ok && v.Kind == KindText {
		return v.Text
	}
	return ""
}

// Number retorna o campo numérico; ok é falso se ausente
func (r Record) Number(name string) (float64, bool) {
	v, ok := r.Fields[name]
	if !ok || (v.Kind != KindNumber && v.Kind != KindYear) {
		return 0, false
	}
	return v.Number, true
}

// NumberOrZero retorna o campo numérico ou 0
func (r Record) NumberOrZero(name string) float64 {
	n, _ := r.Number(name)
	return n
}

// SetOf retorna os itens de um campo de múltipla escolha
func (r Record) SetOf(name string) []string {
	if v, ok := r.Fields[name]; ok && v.Kind == KindSet {
		return v.Set
	}
	return nil
}

// Allocation retorna o mapa categoria → percentual
func (r Record) Allocation(name string) map[string]float64 {
	if v, ok := r.Fields[name]; ok && v.Kind == KindAllocation {
		return v.Allocation
	}
	return nil
}

// Team retorna a lista de integrantes
func (r Record) Team(name string) []TeamMember {
	if v, ok := r.Fields[name]; ok && v.Kind == KindTeam {
		return v.Team
	}
	return nil
}

// Flag retorna o campo booleano
func (r Record) Flag(name string) bool {
	if v, ok := r.Fields[name]; ok && v.Kind == KindFlag {
		return v.Flag
	}
	return false
}

// Values devolve os campos em forma nativa, para respostas JSON.
// O sentinela de data em andamento volta como "present".
func (r Record) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(r.Fields))
	for name, v := range r.Fields {
		if v.Kind == KindYear && v.Number == PresentYear {
			out[name] = "present"
			continue
		}
		out[name] = v.Interface()
	}
	return out
}

// AllocationTotal soma os percentuais de um campo de alocação
func AllocationTotal(m map[string]float64) float64 {
	var total float64
	for _, v := range m {
		total += v
	}
	return total
}

// SortedKeys retorna as chaves de uma alocação em ordem alfabética
func SortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
