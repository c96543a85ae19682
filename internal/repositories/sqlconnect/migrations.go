package sqlconnect

import (
	"fmt"

	"budgetbuddy/internal/repositories/dbrouter"
)

// tableSpec ties a table's DDL to the module that owns it. Placement is
// derived from the routing policy, never stated by hand, so a table can
// never be provisioned on the wrong instance.
type tableSpec struct {
	name   string
	module string
	ddl    string
}

var tables = []tableSpec{
	{
		name:   "users",
		module: "accounts",
		ddl: `CREATE TABLE IF NOT EXISTS users (
			id INT AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(150) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
			first_name VARCHAR(150) NOT NULL DEFAULT '',
			last_name VARCHAR(150) NOT NULL DEFAULT '',
			password TEXT NOT NULL,
			created_at VARCHAR(35) NOT NULL,
			UNIQUE KEY uq_users_username (username)
		)`,
	},
	{
		name:   "transactions",
		module: "finance",
		ddl: `CREATE TABLE IF NOT EXISTS transactions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			category VARCHAR(32) NOT NULL,
			transaction_type VARCHAR(7) NOT NULL,
			amount DECIMAL(12,2) NOT NULL,
			note VARCHAR(255) NULL,
			date VARCHAR(10) NOT NULL,
			created_at VARCHAR(35) NOT NULL,
			KEY idx_transactions_user_date (user_id, date),
			CONSTRAINT fk_transactions_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	},
	{
		name:   "budgets",
		module: "finance",
		ddl: `CREATE TABLE IF NOT EXISTS budgets (
			id INT AUTO_INCREMENT PRIMARY KEY,
			user_id INT NOT NULL,
			category VARCHAR(32) NOT NULL,
			budget_amount DECIMAL(12,2) NOT NULL,
			cycle_month VARCHAR(10) NOT NULL,
			created_at VARCHAR(35) NOT NULL,
			updated_at VARCHAR(35) NOT NULL,
			UNIQUE KEY uq_budgets_user_category_month (user_id, category, cycle_month),
			CONSTRAINT fk_budgets_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)`,
	},
}

// placementFor returns the only instance the policy accepts for a table.
func placementFor(p dbrouter.Policy, tbl tableSpec) (dbrouter.Instance, error) {
	for _, inst := range []dbrouter.Instance{dbrouter.Primary, dbrouter.Secondary} {
		if p.AllowMigrate(inst, tbl.module) {
			return inst, nil
		}
	}
	return "", fmt.Errorf("no instance accepts table %s owned by %s", tbl.name, tbl.module)
}

// Migrate provisions every table on the instance its owning module routes
// to. Both pools must already be installed via Init or ConnectDbs.
func Migrate(p dbrouter.Policy) error {
	for _, tbl := range tables {
		inst, err := placementFor(p, tbl)
		if err != nil {
			return err
		}

		db := dbFor(inst)
		if db == nil {
			return fmt.Errorf("instance %s is not connected", inst)
		}

		if _, err := db.Exec(tbl.ddl); err != nil {
			return fmt.Errorf("failed to create table %s on %s: %w", tbl.name, inst, err)
		}
	}
	return nil
}
