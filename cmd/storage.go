package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/BookEasy/internal/config"
	"github.com/m04kA/BookEasy/internal/infra/seed"
	appointmentRepo "github.com/m04kA/BookEasy/internal/infra/storage/appointment"
	businessRepo "github.com/m04kA/BookEasy/internal/infra/storage/business"
	"github.com/m04kA/BookEasy/internal/infra/storage/memory"
	appointmentsService "github.com/m04kA/BookEasy/internal/service/appointments"
	authService "github.com/m04kA/BookEasy/internal/service/auth"
	businessesService "github.com/m04kA/BookEasy/internal/service/businesses"
	createAppointmentUC "github.com/m04kA/BookEasy/internal/usecase/create_appointment"
	"github.com/m04kA/BookEasy/pkg/dbmetrics"
	"github.com/m04kA/BookEasy/pkg/logger"
	"github.com/m04kA/BookEasy/pkg/txmanager"
)

type businessStore interface {
	businessesService.BusinessRepository
	authService.BusinessRepository
}

type appointmentStore interface {
	appointmentsService.AppointmentRepository
	createAppointmentUC.AppointmentRepository
}

type txManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// storage репозитории выбранного драйвера
type storage struct {
	businesses   businessStore
	appointments appointmentStore
	tx           txManager
	close        func()
}

// openStorage поднимает postgres или in-memory хранилище.
// collector может быть nil, тогда запросы к БД не замеряются.
func openStorage(cfg *config.Config, collector dbmetrics.MetricsCollector, stopCh <-chan struct{}, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		snapshot, err := seed.LoadFile(cfg.Storage.SnapshotFile)
		if err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		log.Info("In-memory storage initialized from %q (businesses=%d, appointments=%d)",
			cfg.Storage.SnapshotFile, len(snapshot.Businesses), len(snapshot.Appointments))

		return &storage{
			businesses:   memory.NewBusinessRepository(snapshot.Businesses),
			appointments: memory.NewAppointmentRepository(snapshot.Appointments),
			tx:           memory.NewTxManager(),
			close:        func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, collector, stopCh)

	return &storage{
		businesses:   businessRepo.NewRepository(wrappedDB),
		appointments: appointmentRepo.NewRepository(wrappedDB),
		tx:           txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			_ = db.Close()
		},
	}, nil
}
