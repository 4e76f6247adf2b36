package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/vipcleaners/pos-api/internal/application/auth"
	"github.com/vipcleaners/pos-api/internal/application/dto"
	"github.com/vipcleaners/pos-api/internal/application/usecase"
	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/infrastructure/postgres"
)

// defaultCatalog servicios con los que arranca una tienda nueva.
var defaultCatalog = []dto.CreateServiceRequest{
	{Name: "Limpieza Básica", Description: "Lavado exterior, suela y cordones", Price: decimal.NewFromInt(25000)},
	{Name: "Limpieza Premium", Description: "Lavado profundo, interior y desodorización", Price: decimal.NewFromInt(45000)},
	{Name: "Restauración", Description: "Repintado de suela y retoque de color", Price: decimal.NewFromInt(80000)},
	{Name: "Impermeabilización", Description: "Protección contra agua y manchas", Price: decimal.NewFromInt(20000)},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga datos iniciales",
}

var (
	adminEmail    string
	adminPassword string
	adminName     string
)

var seedAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Crea el usuario administrador",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		uc := auth.NewAuthUseCase(postgres.NewUserRepository(current.pool), auth.JWTConfig{
			Secret:     current.cfg.JWT.Secret,
			ExpMinutes: current.cfg.JWT.Expiration,
			Issuer:     current.cfg.JWT.Issuer,
		})
		user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
			Email:    adminEmail,
			Password: adminPassword,
			Name:     adminName,
			Role:     entity.RoleAdmin,
		})
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			fmt.Fprintln(cmd.OutOrStdout(), "el administrador ya existe:", strings.ToLower(adminEmail))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "administrador creado: %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

var seedServicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Carga el catálogo de servicios por defecto (omite los que ya existen)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		uc := usecase.NewServiceUseCase(postgres.NewCleaningServiceRepository(current.pool))
		existing, err := uc.List(ctx, false)
		if err != nil {
			return err
		}
		for _, req := range missingServices(existing, defaultCatalog) {
			svc, err := uc.Create(ctx, req)
			if err != nil {
				return fmt.Errorf("crear %q: %w", req.Name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "servicio creado: %s %s\n", svc.Name, svc.Price.StringFixed(0))
		}
		return nil
	},
}

// missingServices filtra del catálogo los nombres que ya existen (sin distinguir mayúsculas).
func missingServices(existing []dto.ServiceResponse, catalog []dto.CreateServiceRequest) []dto.CreateServiceRequest {
	have := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		have[strings.ToLower(strings.TrimSpace(s.Name))] = struct{}{}
	}
	var out []dto.CreateServiceRequest
	for _, req := range catalog {
		if _, ok := have[strings.ToLower(req.Name)]; !ok {
			out = append(out, req)
		}
	}
	return out
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "", "email del administrador")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "contraseña (mínimo 8 caracteres)")
	seedAdminCmd.Flags().StringVar(&adminName, "name", "Administrador", "nombre visible")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("password")
	seedCmd.AddCommand(seedAdminCmd, seedServicesCmd)
}
