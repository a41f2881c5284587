package mysql

import (
	"database/sql"
	"fmt"
)

// EnsureSchema creates the tables when they do not exist yet. Statements are
// ordered so every referenced table exists before its foreign keys.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS clients (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255),
			phone VARCHAR(20) NOT NULL UNIQUE,
			email VARCHAR(255),
			address VARCHAR(500),
			client_type VARCHAR(32) NOT NULL DEFAULT 'оба',
			notes TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_clients_phone (phone)
		) CHARACTER SET utf8mb4`,

		`CREATE TABLE IF NOT EXISTS products (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DECIMAL(12,2) NOT NULL,
			category VARCHAR(32) NOT NULL,
			preparation_time INT,
			image_url VARCHAR(500),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_products_category (category)
		) CHARACTER SET utf8mb4`,

		`CREATE TABLE IF NOT EXISTS inventory (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			quantity DOUBLE NOT NULL,
			unit VARCHAR(16) NOT NULL,
			min_quantity DOUBLE,
			price_per_unit DOUBLE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4`,

		`CREATE TABLE IF NOT EXISTS users (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(100) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			city VARCHAR(100),
			position VARCHAR(100),
			address VARCHAR(500),
			phone VARCHAR(20),
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		) CHARACTER SET utf8mb4`,

		`CREATE TABLE IF NOT EXISTS orders (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			client_id INT UNSIGNED NOT NULL,
			recipient_id INT UNSIGNED NOT NULL,
			executor_id INT UNSIGNED,
			status VARCHAR(32) NOT NULL DEFAULT 'new',
			delivery_date DATETIME NOT NULL,
			delivery_address VARCHAR(500) NOT NULL,
			delivery_time_range VARCHAR(32),
			total_price DECIMAL(12,2) NOT NULL DEFAULT 0,
			comment TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_orders_status (status),
			INDEX idx_orders_delivery_date (delivery_date),
			CONSTRAINT fk_orders_client FOREIGN KEY (client_id) REFERENCES clients (id),
			CONSTRAINT fk_orders_recipient FOREIGN KEY (recipient_id) REFERENCES clients (id),
			CONSTRAINT fk_orders_executor FOREIGN KEY (executor_id) REFERENCES users (id)
		) CHARACTER SET utf8mb4`,

		`CREATE TABLE IF NOT EXISTS order_items (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			order_id INT UNSIGNED NOT NULL,
			product_id INT UNSIGNED NOT NULL,
			quantity INT NOT NULL DEFAULT 1,
			price DECIMAL(12,2) NOT NULL,
			INDEX idx_order_items_order (order_id),
			CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders (id),
			CONSTRAINT fk_order_items_product FOREIGN KEY (product_id) REFERENCES products (id)
		) CHARACTER SET utf8mb4`,

		`CREATE TABLE IF NOT EXISTS order_history (
			id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			order_id INT UNSIGNED NOT NULL,
			action VARCHAR(32) NOT NULL,
			old_status VARCHAR(32),
			new_status VARCHAR(32) NOT NULL,
			comment TEXT,
			created_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
			INDEX idx_order_history_order (order_id),
			CONSTRAINT fk_order_history_order FOREIGN KEY (order_id) REFERENCES orders (id)
		) CHARACTER SET utf8mb4`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	return nil
}
