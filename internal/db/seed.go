package db

import (
	"context"
	"fmt"
	"time"

	"github.com/example/visa/internal/apperror"
	"github.com/example/visa/internal/core/establishment"
	"github.com/example/visa/internal/ports/secondary"
)

type fixture struct {
	name, taxID, group, cnae, risk, responsible, responsibleID string
	address, phone, email, project                             string
	lastInspection, reinspection, permit, reason               string
}

// SeedFixtures populates the database with development fixtures covering
// every status. Inspection dates are relative to today so the statuses stay
// meaningful. Fixtures go through repo.Create and its validation; those whose
// tax ID already exists are skipped. Returns the number of rows inserted.
func SeedFixtures(ctx context.Context, repo secondary.EstablishmentRepository, today time.Time) (int, error) {
	daysAgo := func(n int) string {
		return establishment.FormatDate(establishment.Day(today).AddDate(0, 0, -n))
	}

	fixtures := []fixture{
		{
			name: "Padaria Pão Dourado", taxID: "11.222.333/0001-81",
			group: string(establishment.GroupFood), cnae: "1091-1/02", risk: string(establishment.RiskHigh),
			responsible: "Maria Souza", responsibleID: "123.456.789-09",
			address: "Rua das Flores, 100", phone: "(19) 3232-1000", email: "contato@paodourado.com.br",
			project:        string(establishment.ProjectApprovedBuilt),
			lastInspection: daysAgo(30), reinspection: establishment.ReinspectionNo,
			permit: string(establishment.PermitReleased), reason: string(establishment.ReasonPermitRenewal),
		},
		{
			name: "Restaurante Sabor Caseiro", taxID: "22.333.444/0001-92",
			group: string(establishment.GroupFood), cnae: "5611-2/01", risk: string(establishment.RiskLowA),
			responsible: "João Lima", responsibleID: "987.654.321-00",
			address: "Av. Brasil, 2500", phone: "(19) 3232-2000", email: "",
			project:        string(establishment.ProjectApprovedNotBuilt),
			lastInspection: daysAgo(290), reinspection: establishment.ReinspectionYes,
			permit: string(establishment.PermitUnderReview), reason: string(establishment.ReasonComplaint),
		},
		{
			name: "Clínica Vida Plena", taxID: "33.444.555/0001-03",
			group: string(establishment.GroupHealthServices), cnae: "8630-5/03", risk: string(establishment.RiskHigh),
			responsible: "Dra. Ana Prado", responsibleID: "111.222.333-44",
			address: "Rua Barão de Jaguara, 45", phone: "(19) 3232-3000", email: "adm@vidaplena.med.br",
			project:        string(establishment.ProjectUnderReview),
			lastInspection: daysAgo(400), reinspection: establishment.ReinspectionNo,
			permit: string(establishment.PermitReleased), reason: string(establishment.ReasonAgencyInterest),
		},
		{
			name: "Farmácia Popular Centro", taxID: "44.555.666/0001-14",
			group: string(establishment.GroupHealthServices), cnae: "4771-7/01", risk: string(establishment.RiskLowB),
			responsible: "Carlos Mendes", responsibleID: "555.666.777-88",
			address: "Rua Treze de Maio, 300", phone: "(19) 3232-4000",
			project: string(establishment.ProjectNotApplicable),
		},
	}

	inserted := 0
	for _, f := range fixtures {
		status, next := establishment.ComputeStatus(f.lastInspection, today)
		_, err := repo.Create(ctx, &secondary.EstablishmentRecord{
			Name:                 f.name,
			TaxID:                f.taxID,
			Group:                f.group,
			ActivityCode:         f.cnae,
			RiskGrade:            f.risk,
			ResponsiblePerson:    f.responsible,
			ResponsiblePersonID:  f.responsibleID,
			Address:              f.address,
			Phone:                f.phone,
			Email:                f.email,
			ArchitecturalProject: f.project,
			LastInspectionDate:   f.lastInspection,
			Reinspection:         f.reinspection,
			PermitStatus:         f.permit,
			NextInspectionDate:   next,
			Status:               string(status),
			Reason:               f.reason,
		})
		if apperror.Is(err, apperror.CodeDuplicateKey) {
			continue
		}
		if err != nil {
			return inserted, fmt.Errorf("seed %s: %w", f.taxID, err)
		}
		inserted++
	}

	return inserted, nil
}
