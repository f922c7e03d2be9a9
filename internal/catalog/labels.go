// ABOUTME: Display labels and donation progress for catalog entries
// ABOUTME: Translates backend status and sex values into Spanish labels

package catalog

var statusLabels = map[string]string{
	"Available": "Disponible",
	"Adopted":   "Adoptado",
	"Pending":   "Pendiente",
}

var sexLabels = map[string]string{
	"Male":   "Macho",
	"Female": "Hembra",
}

// StatusLabel translates an adoption status; unknown values pass through.
func StatusLabel(status string) string {
	if l, ok := statusLabels[status]; ok {
		return l
	}
	return status
}

// SexLabel translates an animal's sex; unknown values pass through.
func SexLabel(sex string) string {
	if l, ok := sexLabels[sex]; ok {
		return l
	}
	return sex
}

// Progress is the collected share of a donation need, in percent, capped at 100.
func Progress(collected, needed int) float64 {
	if needed <= 0 || collected <= 0 {
		return 0
	}
	pct := float64(collected) / float64(needed) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
