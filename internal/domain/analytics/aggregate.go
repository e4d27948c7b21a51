// Package analytics contém as agregações puras calculadas sobre as respostas
// normalizadas. Nenhuma função aqui acessa banco de dados ou guarda estado.
package analytics

import (
	"math"
	"sort"
	"strconv"

	"github.com/PavaniTiago/lcp-network-api/internal/domain/entities"
	"github.com/PavaniTiago/lcp-network-api/internal/domain/survey"
)

// Accessor extrai de um registro os valores observados de um campo.
// Campos escalares devolvem no máximo um valor; campos de lista, um por item.
type Accessor func(entities.Record) []string

// Stats resume um campo numérico
type Stats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
	Total  float64 `json:"total"`
}

// Point é uma entrada de uma distribuição ordenada
type Point struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// ratio divide protegendo contra denominador zero; o resultado nunca é NaN nem Inf
func ratio(num, den float64) float64 {
	if den == 0 || math.IsNaN(num) || math.IsNaN(den) {
		return 0
	}
	r := num / den
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0
	}
	return r
}

// TotalCapital soma target_capital das respostas com valor positivo
func TotalCapital(rows []entities.Record) float64 {
	var total float64
	for _, r := range rows {
		if v := r.NumberOrZero(survey.FieldTargetCapital); v > 0 {
			total += v
		}
	}
	return total
}

// ticketAverages devolve (min+max)/2 das respostas com os dois lados informados
func ticketAverages(rows []entities.Record) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		lo := r.NumberOrZero(survey.FieldTicketSizeMin)
		hi := r.NumberOrZero(survey.FieldTicketSizeMax)
		if lo > 0 && hi > 0 {
			out = append(out, (lo+hi)/2)
		}
	}
	return out
}

// AverageTicketSize é a média dos tickets médios por resposta
func AverageTicketSize(rows []entities.Record) float64 {
	values := ticketAverages(rows)
	return ratio(sum(values), float64(len(values)))
}

// MedianTicketSize usa o elemento de índice n/2 da lista ordenada.
// Com quantidade par isso escolhe o maior dos dois centrais: [10,20,30,40] → 30.
func MedianTicketSize(rows []entities.Record) float64 {
	return median(ticketAverages(rows))
}

// CapitalEfficiency é capital levantado / capital alvo * 100, apenas para
// respostas com capital alvo positivo.
func CapitalEfficiency(rows []entities.Record) float64 {
	var raised, target float64
	for _, r := range rows {
		t := r.NumberOrZero(survey.FieldTargetCapital)
		if t <= 0 {
			continue
		}
		target += t
		raised += r.NumberOrZero(survey.FieldCapitalRaised)
	}
	return ratio(raised, target) * 100
}

// GeographicDiversity é o número de domicílios distintos / número de respostas * 100
func GeographicDiversity(rows []entities.Record) float64 {
	distinct := make(map[string]struct{})
	for _, r := range rows {
		for _, d := range r.SetOf(survey.FieldLegalDomicile) {
			distinct[d] = struct{}{}
		}
	}
	return ratio(float64(len(distinct)), float64(len(rows))) * 100
}

// DistributionBy conta as ocorrências de cada valor observado.
// Campos de lista contam uma vez por item; valores ausentes não entram no mapa.
func DistributionBy(rows []entities.Record, get Accessor) map[string]int {
	out := make(map[string]int)
	for _, r := range rows {
		for _, v := range get(r) {
			if v == "" {
				continue
			}
			out[v]++
		}
	}
	return out
}

// Field cria um Accessor genérico a partir do tipo canônico do campo
func Field(name string) Accessor {
	return func(r entities.Record) []string {
		v, ok := r.Get(name)
		if !ok {
			return nil
		}
		switch v.Kind {
		case entities.KindText:
			return []string{v.Text}
		case entities.KindNumber:
			return []string{strconv.FormatFloat(v.Number, 'f', -1, 64)}
		case entities.KindYear:
			if v.Number == entities.PresentYear {
				return []string{survey.PresentLiteral}
			}
			return []string{strconv.FormatFloat(v.Number, 'f', -1, 64)}
		case entities.KindFlag:
			return []string{strconv.FormatBool(v.Flag)}
		case entities.KindSet:
			return v.Set
		case entities.KindAllocation:
			return entities.SortedKeys(v.Allocation)
		case entities.KindTeam:
			roles := make([]string, 0, len(v.Team))
			for _, m := range v.Team {
				roles = append(roles, m.Role)
			}
			return roles
		}
		return nil
	}
}

// NumericStats resume um campo numérico; respostas sem o campo são ignoradas
func NumericStats(rows []entities.Record, field string) Stats {
	values := make([]float64, 0, len(rows))
	for _, r := range rows {
		v, ok := r.Get(field)
		if !ok || v.Kind != entities.KindNumber {
			continue
		}
		values = append(values, v.Number)
	}
	if len(values) == 0 {
		return Stats{}
	}

	s := Stats{Count: len(values), Min: values[0], Max: values[0], Total: sum(values)}
	for _, v := range values[1:] {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Avg = ratio(s.Total, float64(s.Count))
	s.Median = median(values)
	return s
}

// AllocationAverage calcula o percentual médio por categoria de uma alocação,
// dividindo pela quantidade total de respostas e arredondando para inteiro.
func AllocationAverage(rows []entities.Record, field string) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range rows {
		for k, v := range r.Allocation(field) {
			totals[k] += v
		}
	}
	out := make(map[string]float64, len(totals))
	for k, v := range totals {
		out[k] = math.Round(ratio(v, float64(len(rows))))
	}
	return out
}

// Series ordena uma distribuição por contagem (desc) e nome, com o percentual sobre responses
func Series(dist map[string]int, responses int) []Point {
	points := make([]Point, 0, len(dist))
	for name, count := range dist {
		points = append(points, Point{
			Name:       name,
			Count:      count,
			Percentage: ratio(float64(count), float64(responses)) * 100,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Count != points[j].Count {
			return points[i].Count > points[j].Count
		}
		return points[i].Name < points[j].Name
	})
	return points
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}
