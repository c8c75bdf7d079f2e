package onboarding

import (
	"fmt"

	"github.com/jhoicas/Onboarding-api/internal/domain"
)

// StorePolicy política de mutación de StepRecord.
type StorePolicy string

const (
	// PolicyUpsert una fila por (candidato, paso), actualizada en sitio.
	PolicyUpsert StorePolicy = "upsert"
	// PolicyAppend una fila nueva por actualización; el estado vigente es el más reciente.
	PolicyAppend StorePolicy = "append"
)

// ParsePolicy valida el nombre de política de configuración.
func ParsePolicy(s string) (StorePolicy, error) {
	switch StorePolicy(s) {
	case PolicyUpsert, PolicyAppend:
		return StorePolicy(s), nil
	case "":
		return PolicyUpsert, nil
	}
	return "", fmt.Errorf("%w: política de almacenamiento %q", domain.ErrValidation, s)
}
