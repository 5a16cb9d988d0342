package pkg

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt" // go get golang.org/x/crypto/bcrypt

	"gorm.io/driver/postgres" // go get gorm.io/driver/postgres
	"gorm.io/gorm"            // go get gorm.io/gorm
	"gorm.io/gorm/logger"
)

/*
	DATABASE CLIENT

ALL DATABASES IN THE CTMS ARE ACCESSED VIA A DBClient
*/
type DBClient struct {
	ConnStr string
	*gorm.DB
}

func (dbc *DBClient) Connect() (err error) {

	if dbc.DB, err = gorm.Open(postgres.Open(dbc.ConnStr), &gorm.Config{}); err != nil {
		return LogErr(err)
	}
	dbc.DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"")
	dbc.DB.Logger = logger.Default.LogMode(logger.Error)
	return err
}

func (dbc *DBClient) Disconnect() (err error) {
	db, err := dbc.DB.DB()
	if err != nil {
		return LogErr(err)
	}
	if err = db.Close(); err != nil {
		return LogErr(err)
	}
	return
}

/*
	ADMIN DATABASE

USED ONLY TO CREATE / DROP THE CTMS DATABASE
*/
type ADMINDatabase struct{ DBClient }

func (adb ADMINDatabase) CreateDatabase(db_name string) (err error) {
	db_name = strings.ToLower(db_name)
	createDBCommand := fmt.Sprintf(`CREATE DATABASE %s WITH
		ENCODING = 'UTF8' TABLESPACE = pg_default CONNECTION LIMIT = -1 IS_TEMPLATE = False;`,
		db_name,
	)
	res := adb.DB.Exec(createDBCommand)
	err = res.Error
	return
}

func (adb ADMINDatabase) CheckDatabaseExists(db_name string) (exists bool) {
	db_name = strings.ToLower(db_name)
	checkExistsCommand := `SELECT EXISTS ( SELECT datname FROM pg_catalog.pg_database WHERE datname=? )`
	adb.DB.Raw(checkExistsCommand, db_name).Scan(&exists)
	return
}

func (adb ADMINDatabase) DropDatabase(db_name string) {
	db_name = strings.ToLower(db_name)
	dropDBCommand := fmt.Sprintf(`DROP DATABASE IF EXISTS %s WITH (FORCE)`, db_name)
	adb.DB.Exec(dropDBCommand)
}

/*
	CTMS DATABASE

HOLDS ALL TANK, SUPPLY, READING, PARAMETER, NOTE AND USER DATA
*/
var CTMS CTMSDatabase

type CTMSDatabase struct{ DBClient }

func CreateCTMSDatabase(conf Config, drop bool) (err error) {

	adb := ADMINDatabase{DBClient{ConnStr: conf.AdminConnStr()}}
	if err = adb.Connect(); err != nil {
		return
	}
	defer adb.Disconnect()

	if drop {
		adb.DropDatabase(conf.DBName)
	}

	exists := adb.CheckDatabaseExists(conf.DBName)
	if !exists {
		if err = adb.CreateDatabase(conf.DBName); err != nil {
			return
		}
	}

	CTMS = CTMSDatabase{DBClient{ConnStr: conf.ConnStr()}}
	if err = CTMS.Connect(); err != nil {
		return
	}

	if err = CTMS.MigrateTables(); err != nil {
		return
	}

	if !exists {
		err = CTMS.SeedAdminUser(conf)
	}
	return
}

/* REGISTERED BY THE DOMAIN PACKAGE BEFORE CreateCTMSDatabase IS CALLED;
AVOIDS AN IMPORT CYCLE BETWEEN pkg AND pkg/ctank */
var MigrateModels = []interface{}{}

func (ctms CTMSDatabase) MigrateTables() (err error) {
	models := append([]interface{}{&User{}}, MigrateModels...)
	return ctms.DB.AutoMigrate(models...)
}

func (ctms CTMSDatabase) SeedAdminUser(conf Config) (err error) {

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(conf.AdminPW), bcrypt.DefaultCost)
	if err != nil {
		return LogErr(err)
	}
	newUser := User{
		Name:     conf.AdminUser,
		Email:    strings.ToLower(conf.AdminEmail),
		Password: string(hashedPassword),
		Role:     "admin",
	}
	if result := ctms.DB.Create(&newUser); result.Error != nil {
		return LogErr(result.Error)
	}
	return
}
