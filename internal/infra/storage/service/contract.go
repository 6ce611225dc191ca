package service

import "github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"

// DBExecutor реализуется *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
