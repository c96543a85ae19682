package sqlconnect

import (
	"database/sql"
	"fmt"
	"os"

	"budgetbuddy/internal/repositories/dbrouter"

	_ "github.com/go-sql-driver/mysql"
)

var (
	Primary   *sql.DB
	Secondary *sql.DB

	policy dbrouter.Policy
)

// Init wires the two pools and the routing policy. Tests inject their own
// pools here instead of dialing MySQL.
func Init(primary, secondary *sql.DB, p dbrouter.Policy) {
	Primary = primary
	Secondary = secondary
	policy = p
}

// ConnectDbs opens and pings both instances from PRIMARY_DB_* and
// SECONDARY_DB_* env config, then installs the given policy.
func ConnectDbs(p dbrouter.Policy) error {
	if Primary != nil && Secondary != nil {
		return nil
	}

	fmt.Println("Connecting to MariaDB instances...")

	primary, err := openInstance("PRIMARY")
	if err != nil {
		return err
	}

	secondary, err := openInstance("SECONDARY")
	if err != nil {
		return err
	}

	Init(primary, secondary, p)

	fmt.Println("✅ Connected to both MariaDB instances")
	return nil
}

func openInstance(prefix string) (*sql.DB, error) {
	user := os.Getenv(prefix + "_DB_USER")
	password := os.Getenv(prefix + "_DB_PASSWORD")
	dbname := os.Getenv(prefix + "_DB_NAME")
	port := os.Getenv(prefix + "_DB_PORT")
	host := os.Getenv(prefix + "_DB_HOST")

	connectionString := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=false", user, password, host, port, dbname)

	db, err := sql.Open("mysql", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s DB connection: %w", prefix, err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping %s DB: %w", prefix, err)
	}

	return db, nil
}

func dbFor(inst dbrouter.Instance) *sql.DB {
	if inst == dbrouter.Secondary {
		return Secondary
	}
	return Primary
}

// DBForRead resolves the pool serving reads for the given owning module.
func DBForRead(module string) *sql.DB {
	return dbFor(policy.InstanceFor(module, dbrouter.Read))
}

// DBForWrite resolves the pool serving writes for the given owning module.
func DBForWrite(module string) *sql.DB {
	return dbFor(policy.InstanceFor(module, dbrouter.Write))
}
