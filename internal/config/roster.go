package config

import (
	"encoding/json"
	"fmt"
	"os"

	"hr-selfservice/internal/core/domain"

	"github.com/sirupsen/logrus"
)

// LoadRoster returns the employee roster. When path is empty the built-in
// roster is used; otherwise path must point to a JSON array of employees.
func LoadRoster(path string) ([]domain.Employee, error) {
	if path == "" {
		return DefaultRoster(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}

	var employees []domain.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}

	for i, e := range employees {
		if e.Email == "" || e.HRCode == "" {
			return nil, fmt.Errorf("roster entry %d: email and hrCode are required", i)
		}
		if !e.Department.Valid() {
			return nil, fmt.Errorf("roster entry %d: unknown department %q", i, e.Department)
		}
	}

	logrus.WithFields(logrus.Fields{"path": path, "employees": len(employees)}).Info("👥 Roster loaded")
	return employees, nil
}

func years(n int) *int { return &n }

func title(t domain.Title) *domain.Title { return &t }

// DefaultRoster is the built-in employee table
func DefaultRoster() []domain.Employee {
	return []domain.Employee{
		// DLMS
		{HRCode: "1001", Email: "nour.hassan@example.com", Name: "Nour Hassan", Department: domain.DepartmentDLMS, Experience: years(9), Title: title(domain.TitleTeamLead)},
		{HRCode: "1002", Email: "omar.fathy@example.com", Name: "Omar Fathy", Department: domain.DepartmentDLMS, Experience: years(5), Title: title(domain.TitleSenior)},
		{HRCode: "1003", Email: "salma.adel@example.com", Name: "Salma Adel", Department: domain.DepartmentDLMS, Experience: years(3), Title: title(domain.TitleMid)},
		{HRCode: "1004", Email: "youssef.samir@example.com", Name: "Youssef Samir", Department: domain.DepartmentDLMS, Experience: years(1), Title: title(domain.TitleJunior)},
		{HRCode: "1005", Email: "mariam.khaled@example.com", Name: "Mariam Khaled", Department: domain.DepartmentDLMS},

		// Flow
		{HRCode: "2001", Email: "karim.mostafa@example.com", Name: "Karim Mostafa", Department: domain.DepartmentFlow, Experience: years(8), Title: title(domain.TitleTeamLead)},
		{HRCode: "2002", Email: "hana.ibrahim@example.com", Name: "Hana Ibrahim", Department: domain.DepartmentFlow, Experience: years(4), Title: title(domain.TitleMid)},
		{HRCode: "2003", Email: "ali.tarek@example.com", Name: "Ali Tarek", Department: domain.DepartmentFlow, Experience: years(2), Title: title(domain.TitleJunior)},

		// Prepaid
		{HRCode: "3001", Email: "laila.mahmoud@example.com", Name: "Laila Mahmoud", Department: domain.DepartmentPrepaid, Experience: years(10), Title: title(domain.TitleTeamLead)},
		{HRCode: "3002", Email: "ahmed.nabil@example.com", Name: "Ahmed Nabil", Department: domain.DepartmentPrepaid, Experience: years(6), Title: title(domain.TitleSenior)},
		{HRCode: "3003", Email: "rana.sherif@example.com", Name: "Rana Sherif", Department: domain.DepartmentPrepaid, Experience: years(2), Title: title(domain.TitleJunior)},

		// R&D
		{HRCode: "4001", Email: "mostafa.elsayed@example.com", Name: "Mostafa Elsayed", Department: domain.DepartmentRnD, Experience: years(7), Title: title(domain.TitleSenior)},
		{HRCode: "4002", Email: "dina.ramadan@example.com", Name: "Dina Ramadan", Department: domain.DepartmentRnD, Experience: years(3), Title: title(domain.TitleMid)},

		// Communication
		{HRCode: "5001", Email: "tamer.gaber@example.com", Name: "Tamer Gaber", Department: domain.DepartmentCommunication, Experience: years(11), Title: title(domain.TitleTeamLead)},
		{HRCode: "5002", Email: "yasmin.fouad@example.com", Name: "Yasmin Fouad", Department: domain.DepartmentCommunication, Experience: years(1), Title: title(domain.TitleJunior)},

		// Tooling
		{HRCode: "6001", Email: "sherif.anwar@example.com", Name: "Sherif Anwar", Department: domain.DepartmentTooling, Experience: years(4), Title: title(domain.TitleMid)},
	}
}
