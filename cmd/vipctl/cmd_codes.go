package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vipcleaners/pos-api/internal/application/storage"
	infrapdf "github.com/vipcleaners/pos-api/internal/infrastructure/pdf"
)

var checkCodeCmd = &cobra.Command{
	Use:   "check-code <codigo>",
	Short: "Valida formato y disponibilidad de un código de ubicación",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		svc, err := storageService()
		if err != nil {
			return err
		}
		res := svc.Validate(ctx, args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "válido=%t disponible=%t %s\n", res.Valid, res.Available, res.Message)
		for _, s := range res.Suggestions {
			fmt.Fprintln(out, "  sugerencia:", s)
		}
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <caja>",
	Short: "Muestra los códigos en uso de una caja y el siguiente sugerido",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		svc, err := storageService()
		if err != nil {
			return err
		}
		res, err := svc.ListByBox(ctx, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "caja %s: %d ocupados\n", res.Box, res.OccupiedCount)
		for _, u := range res.ExistingCodes {
			fmt.Fprintf(out, "  %s  x%d  %v\n", u.LocationCode, u.OccupantCount, u.OrderReferences)
		}
		gen := svc.Generate(ctx, args[0])
		fmt.Fprintf(out, "siguiente: %s (%s)\n", gen.Code, gen.Mode)
		return nil
	},
}

var labelsOut string

var labelsCmd = &cobra.Command{
	Use:   "labels <caja>",
	Short: "Genera el PDF de etiquetas de una caja",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		svc, err := storageService()
		if err != nil {
			return err
		}
		pdf, filename, err := storage.NewLabelUseCase(svc, infrapdf.NewMarotoLabelGenerator()).BoxLabels(ctx, args[0])
		if err != nil {
			return err
		}
		if labelsOut == "" {
			labelsOut = filename
		}
		if err := os.WriteFile(labelsOut, pdf, 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "etiquetas escritas en", labelsOut)
		return nil
	},
}

func init() {
	labelsCmd.Flags().StringVarP(&labelsOut, "out", "o", "", "archivo de salida (por defecto etiquetas-<caja>.pdf)")
}
