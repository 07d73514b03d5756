// Package testutil prepares a throwaway MySQL schema for repository
// integration tests. Tests skip themselves when no local server answers.
package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

const testDSN = "root:@tcp(localhost:3306)/atelier_test?parseTime=true&charset=utf8mb4"

func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("mysql", testDSN)
	if err != nil {
		t.Skipf("mysql not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("mysql not reachable: %v", err)
	}

	return db
}

func SetupTestTables(t *testing.T, db *sql.DB) {
	t.Helper()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS Addresses (
			id CHAR(36) PRIMARY KEY,
			zipcode VARCHAR(9) NOT NULL,
			street VARCHAR(255) NOT NULL,
			streetNumber INT NOT NULL,
			neighborhood VARCHAR(255) NOT NULL,
			complement VARCHAR(255),
			city VARCHAR(255) NOT NULL,
			province CHAR(2) NOT NULL,
			createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS Images (
			id CHAR(36) PRIMARY KEY,
			filename VARCHAR(255) NOT NULL,
			createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS Customers (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(20) NOT NULL,
			cpf VARCHAR(14) NOT NULL UNIQUE,
			addressId CHAR(36) NOT NULL,
			imageId CHAR(36),
			createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (addressId) REFERENCES Addresses(id),
			FOREIGN KEY (imageId) REFERENCES Images(id)
		)`,
		`CREATE TABLE IF NOT EXISTS DeliveredAddresses (
			id CHAR(36) PRIMARY KEY,
			customerId CHAR(36) NOT NULL,
			zipcode VARCHAR(9) NOT NULL,
			street VARCHAR(255) NOT NULL,
			streetNumber INT NOT NULL,
			neighborhood VARCHAR(255) NOT NULL,
			complement VARCHAR(255),
			city VARCHAR(255) NOT NULL,
			province CHAR(2) NOT NULL,
			isDefaultAddress TINYINT(1) NOT NULL DEFAULT 0,
			createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (customerId) REFERENCES Customers(id)
		)`,
		`CREATE TABLE IF NOT EXISTS Items (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			amountInCents BIGINT NOT NULL,
			isActive TINYINT(1) NOT NULL DEFAULT 1,
			imageId CHAR(36),
			createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (imageId) REFERENCES Images(id)
		)`,
		`CREATE TABLE IF NOT EXISTS Orders (
			id CHAR(36) PRIMARY KEY,
			customerId CHAR(36) NOT NULL,
			deliveryAddressId CHAR(36) NOT NULL,
			takenAt TIMESTAMP NOT NULL,
			collectedAt TIMESTAMP NOT NULL,
			totalAmountInCents BIGINT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
			isCollected TINYINT(1) NOT NULL DEFAULT 0,
			createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (customerId) REFERENCES Customers(id),
			FOREIGN KEY (deliveryAddressId) REFERENCES DeliveredAddresses(id)
		)`,
		`CREATE TABLE IF NOT EXISTS OrderItems (
			id CHAR(36) PRIMARY KEY,
			orderId CHAR(36) NOT NULL,
			itemId CHAR(36) NOT NULL,
			name VARCHAR(255) NOT NULL,
			amountInCents BIGINT NOT NULL,
			createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (orderId) REFERENCES Orders(id)
		)`,
		`CREATE TABLE IF NOT EXISTS OrderImages (
			orderId CHAR(36) NOT NULL,
			imageId CHAR(36) NOT NULL,
			PRIMARY KEY (orderId, imageId),
			FOREIGN KEY (orderId) REFERENCES Orders(id),
			FOREIGN KEY (imageId) REFERENCES Images(id)
		)`,
		`CREATE TABLE IF NOT EXISTS Users (
			id CHAR(36) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			passwordHash VARCHAR(255) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'USER',
			isActive TINYINT(1) NOT NULL DEFAULT 1,
			imageId CHAR(36),
			createdAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updatedAt TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("creating test tables: %v", err)
		}
	}
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	// El orden respeta las claves foráneas.
	tables := []string{
		"OrderImages", "OrderItems", "Orders", "DeliveredAddresses",
		"Items", "Customers", "Images", "Addresses", "Users",
	}

	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("cleaning table %s: %v", table, err)
		}
	}

	db.Close()
}
