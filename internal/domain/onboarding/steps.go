// Package onboarding contiene la definición fija del flujo y el motor de progreso
// (servicios de dominio puros, sin I/O).
package onboarding

// Identificadores de los pasos del flujo.
const (
	StepLogin         = "login"
	StepForms         = "forms"
	StepDocuments     = "documents"
	StepVerification  = "verification"
	StepHRReview      = "hr-review"
	StepOffer         = "offer"
	StepBGV           = "bgv"
	StepPreOnboarding = "pre-onboarding"
	StepGamification  = "gamification"
)

// StepDefinition paso del flujo con su título visible.
type StepDefinition struct {
	ID    string
	Title string
}

// steps orden fijo: define la visualización y el denominador del progreso.
var steps = []StepDefinition{
	{StepLogin, "Login & Password Reset"},
	{StepForms, "Adaptive Forms"},
	{StepDocuments, "Document Upload"},
	{StepVerification, "Cross Validation"},
	{StepHRReview, "HR Review"},
	{StepOffer, "Offer Generation"},
	{StepBGV, "Background Verification"},
	{StepPreOnboarding, "Pre-Onboarding"},
	{StepGamification, "Gamified Induction"},
}

// Steps devuelve una copia de la definición del flujo.
func Steps() []StepDefinition {
	out := make([]StepDefinition, len(steps))
	copy(out, steps)
	return out
}

// StepIDs identificadores en orden.
func StepIDs() []string {
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.ID
	}
	return ids
}

// IsKnownStep indica si el id pertenece al flujo.
func IsKnownStep(id string) bool {
	for _, s := range steps {
		if s.ID == id {
			return true
		}
	}
	return false
}

// StepTitle título visible del paso; si no existe devuelve el propio id.
func StepTitle(id string) string {
	for _, s := range steps {
		if s.ID == id {
			return s.Title
		}
	}
	return id
}
