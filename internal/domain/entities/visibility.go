package entities

// Role é o papel do usuário autenticado
type Role string

const (
	RoleViewer Role = "viewer"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// ParseRole converte a claim do token em Role; desconhecido vira member
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleViewer, RoleMember, RoleAdmin:
		return Role(s)
	}
	return RoleMember
}

// FieldVisibility define quais papéis podem ver um campo nas análises
type FieldVisibility struct {
	SurveyYear int    `json:"survey_year"`
	FieldName  string `json:"field_name"`
	Category   string `json:"field_category"`
	Viewer     bool   `json:"viewer_visible"`
	Member     bool   `json:"member_visible"`
	Admin      bool   `json:"admin_visible"`
}

// Allows indica se o papel pode ver o campo
func (v FieldVisibility) Allows(role Role) bool {
	switch role {
	case RoleAdmin:
		return v.Admin
	case RoleMember:
		return v.Member
	case RoleViewer:
		return v.Viewer
	}
	return false
}

// VisibilityMap agrupa as regras por nome de campo
type VisibilityMap map[string]FieldVisibility

// CanView aplica a regra; campos sem configuração são visíveis apenas para admin
func (m VisibilityMap) CanView(field string, role Role) bool {
	v, ok := m[field]
	if !ok {
		return role == RoleAdmin
	}
	return v.Allows(role)
}
