package database

import (
	"gorm.io/gorm"
)

type Database struct {
	initiativeRepo       *InitiativeRepo
	logRepo              *LogRepo
	adminRepo            *AdminRepo
	externalDatabaseRepo *ExternalDatabaseRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance.
// Queries on the external catalog models are routed by dbresolver when Connect registered a second source.
func New(db *gorm.DB) Database {
	return Database{
		initiativeRepo:       NewInitiativeRepo(db),
		logRepo:              NewLogRepo(db),
		adminRepo:            NewAdminRepo(db),
		externalDatabaseRepo: NewExternalDatabaseRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) InitiativeRepo() *InitiativeRepo {
	return d.initiativeRepo
}

func (d Database) LogRepo() *LogRepo {
	return d.logRepo
}

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

func (d Database) ExternalDatabaseRepo() *ExternalDatabaseRepo {
	return d.externalDatabaseRepo
}
