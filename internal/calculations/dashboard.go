package calculations

import (
	"fmt"

	"github.com/cloud-ru/mba-roi-go/internal/currency"
)

// BuildDashboard собирает панель показателей, график зарплат и таблицу погашения.
// График погашения строится по платежу, округленному до пайс, то есть по той
// сумме, которую пользователь видит на панели.
func BuildDashboard(in ROIInputs) (*Dashboard, error) {
	result, err := ComputeROI(in)
	if err != nil {
		return nil, err
	}

	shownEMI, err := currency.Parse(currency.Format(result.EMI))
	if err != nil {
		return nil, fmt.Errorf("failed to read back formatted EMI: %w", err)
	}

	schedule, err := BuildSchedule(in, shownEMI)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Inputs:   in,
		Result:   result,
		Metrics:  result.Summary(),
		Salaries: ProjectSalaries(in),
		Schedule: schedule,
		Table:    schedule.Table(),
	}, nil
}
