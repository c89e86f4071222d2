package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"boutique-backoffice/app"
	"boutique-backoffice/config"
	"boutique-backoffice/models"
	"boutique-backoffice/service"
)

var (
	// Render command flags
	renderOrderID string
	renderType    string
	renderOut     string
	renderHTML    bool

	// Materialize command flags
	materializePath   string
	materializeOrigin string
)

var rootCmd = &cobra.Command{
	Use:   "boutique-backoffice",
	Short: "Printable order documents and image materialization for the boutique back-office",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an order document to a PDF or HTML file",
	RunE:  runRender,
}

var materializeCmd = &cobra.Command{
	Use:   "materialize",
	Short: "Copy a backend image into the public directory",
	RunE:  runMaterialize,
}

func init() {
	renderCmd.Flags().StringVar(&renderOrderID, "order", "", "Order identifier")
	renderCmd.Flags().StringVar(&renderType, "type", models.DefaultDocumentVariant.Key(), "Document type (ticket_caisse, bon_commande, bon_livraison, devis, facture_client, facture_boutique)")
	renderCmd.Flags().StringVar(&renderOut, "out", "", "Output file (default <type>-<order>.pdf or .html)")
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "Write the HTML document instead of printing a PDF")
	renderCmd.MarkFlagRequired("order")

	materializeCmd.Flags().StringVar(&materializePath, "path", "", "Image path as stored by the backend (e.g. /uploads/2021/05/logo.png)")
	materializeCmd.Flags().StringVar(&materializeOrigin, "origin", "", "Backend origin (default BACKEND_URL)")
	materializeCmd.MarkFlagRequired("path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(materializeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// loadEnv loads .env in development (ignores error if file doesn't exist)
// In production, variables should be set directly
func loadEnv() *config.Config {
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		envPath := ".env"
		if err := godotenv.Overload(envPath); err != nil {
			log.Printf("Warning: .env file not found at %s, using system environment variables", envPath)
		} else {
			log.Printf("Successfully loaded environment variables from %s (overriding system variables)", envPath)
		}
	}
	return config.Load()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadEnv()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Initialize application
	mux := http.NewServeMux()
	a, err := app.Initialize(ctx, cfg, mux)
	if err != nil {
		return err
	}
	defer a.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker)
	addr := "0.0.0.0:" + cfg.Server.Port
	log.Printf("Server starting on %s", addr)
	log.Printf("Documents endpoint: GET %s/documents/{id}?type=bon_commande", cfg.Server.BaseURL)

	if err := http.ListenAndServe(addr, mux); err != nil {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := loadEnv()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	variant := models.ParseDocumentVariant(renderType)
	out := renderOut
	if out == "" {
		ext := ".pdf"
		if renderHTML {
			ext = ".html"
		}
		out = variant.Key() + "-" + renderOrderID + ext
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	order, err := a.Orders.GetByID(ctx, renderOrderID)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", renderOrderID, err)
	}

	var content []byte
	if renderHTML {
		view := a.Documents.BuildView(order, variant, models.RenderOptions{HidePrintButton: true})
		file, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		defer file.Close()
		if err := a.Documents.Render(file, view); err != nil {
			return err
		}
	} else {
		// Chrome loads the document from the running server
		content, err = a.PDF.GeneratePDF(ctx, service.DocumentRenderURL(cfg.Server.BaseURL, renderOrderID, variant), variant)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, content, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
	}

	fmt.Printf("Wrote %s (%s, order %s)\n", out, variant.Title(), renderOrderID)
	return nil
}

func runMaterialize(cmd *cobra.Command, args []string) error {
	cfg := loadEnv()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	images := service.NewImageService(cfg.Images.PublicDir, cfg.Backend.URL, cfg.Images.PlaceholderURL, cfg.Images.FetchTimeout)
	result := images.Materialize(ctx, materializePath, materializeOrigin)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("image %s could not be materialized", materializePath)
	}
	return nil
}
