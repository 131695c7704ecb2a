package business

import "github.com/m04kA/BookEasy/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
