package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/prakasam1973/MOM-Tracker/internal/adapters/repository"
	"github.com/prakasam1973/MOM-Tracker/internal/application/services"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/config"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/server"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/storage"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MOM Tracker server",
		Long:  "Start the MOM Tracker server with all configured routes and the reminder scanner",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewExportCommand creates the calendar export command
func NewExportCommand() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the event calendar as an iCalendar file",
		Run: func(cmd *cobra.Command, args []string) {
			output, _ := cmd.Flags().GetString("output")
			runExport(output)
		},
	}

	exportCmd.Flags().String("output", "events.ics", "Output file path, - for stdout")
	return exportCmd
}

// NewClearCommand creates the command that wipes all stored data
func NewClearCommand() *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored data",
		Long:  "Delete every stored collection: events, attendance, steps, CSR records, profile, and reminders",
		Run: func(cmd *cobra.Command, args []string) {
			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				log.Fatal("Refusing to clear without --yes")
			}
			runClear()
		},
	}

	clearCmd.Flags().Bool("yes", false, "Confirm deletion")
	return clearCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print MOM Tracker version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		appLogger.Fatalw("Failed to open storage", "error", err, "path", cfg.Storage.Path)
	}
	defer store.Close()

	srv, err := server.New(cfg, store, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting MOM Tracker server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)); err != nil {
			appLogger.Infow("Server stopped", "reason", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorw("Shutdown failed", "error", err)
	}
}

func runExport(output string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewNop()

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	weekStart, err := cfg.Calendar.WeekStartDay()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	eventRepo := repository.NewEventRepository(store, appLogger)
	eventService := services.NewEventService(eventRepo, ports.SystemClock{}, uuid.NewString, weekStart, appLogger)
	payload := services.NewExportService(eventService).ICS()

	if output == "-" {
		fmt.Print(payload)
		return
	}

	if err := os.WriteFile(output, []byte(payload), 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", output, err)
	}
	fmt.Printf("Calendar exported to %s\n", output)
}

func runClear() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	if err := repository.WipeAll(context.Background(), store); err != nil {
		log.Fatalf("Failed to clear stored data: %v", err)
	}
	fmt.Println("All stored data cleared")
}
