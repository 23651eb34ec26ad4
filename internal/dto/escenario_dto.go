package dto

// EscenarioResult resume un barrido de escenario: cuántos productos quedaron
// activos (con el flag) y cuántos congelados (sin el flag).
type EscenarioResult struct {
	Exito      bool   `json:"exito"`
	Flag       string `json:"flag,omitempty"`
	Activos    int    `json:"activos"`
	Congelados int    `json:"congelados"`
}
