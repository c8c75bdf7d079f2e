// Command onboardctl tareas de operación sobre el motor de onboarding:
// migraciones, recálculo de progreso, forzado de pasos y alta de personal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(loadContainer).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
