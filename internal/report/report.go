// Package report renders a transport comparison as the plain text summary
// printed by the CLI.
package report

import (
	"fmt"
	"io"

	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/usecase/dto"
)

const lineFormat = "%s takes %d min and produces %d kg of CO2. That is a %.2f%% reduction compared to taking the car.\n"

// Line formats one comparison entry against the car emissions.
// Minutes and kilograms are truncated, savings keep two decimals.
func Line(entry dto.CompareEntry, carEmissions int) string {
	return fmt.Sprintf(lineFormat,
		entry.Label,
		entry.Duration/60,
		entry.Emissions/1000,
		domain.SavingsPercentFloat(entry.Emissions, carEmissions),
	)
}

// Write prints one line per compared transport in comparison order.
func Write(w io.Writer, resp *dto.CompareResponse) error {
	car := resp.Car()
	if car == nil {
		return fmt.Errorf("comparison has no car baseline")
	}

	for _, entry := range resp.Results {
		if _, err := io.WriteString(w, Line(entry, car.Emissions)); err != nil {
			return err
		}
	}
	return nil
}
