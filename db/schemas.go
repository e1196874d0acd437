package db

var schema = `
CREATE TABLE IF NOT EXISTS products (
	id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	title VARCHAR(100) NOT NULL,
	summary VARCHAR(2100) NOT NULL,
	price NUMERIC(18, 2) NOT NULL,
	date_added DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id INTEGER GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	total_amount NUMERIC(18, 2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id INTEGER NOT NULL REFERENCES orders (id) ON DELETE CASCADE,
	product_id INTEGER NOT NULL REFERENCES products (id) ON DELETE RESTRICT,
	quantity INTEGER NOT NULL CHECK (quantity > 0),
	PRIMARY KEY (order_id, product_id)
);
`
