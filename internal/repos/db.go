package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog/users if DB is empty (idempotent; safe on every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products. Integer ids grow with insertion order, so "id DESC" is the
-- recency fallback sort for search results.
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  category TEXT NOT NULL,
  brand TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price >= 0),
  rating INTEGER NOT NULL DEFAULT 0 CHECK (rating BETWEEN 0 AND 5),
  num_reviews INTEGER NOT NULL DEFAULT 0,
  count_in_stock INTEGER NOT NULL DEFAULT 0 CHECK (count_in_stock >= 0),
  is_featured INTEGER NOT NULL DEFAULT 0,
  image TEXT,
  description TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_brand    ON products(brand);
CREATE INDEX IF NOT EXISTS idx_products_price    ON products(price);

-- Reviews live apart from products so listings never carry them.
CREATE TABLE IF NOT EXISTS reviews(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  author TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 0 AND 5),
  comment TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price_at_add NUMERIC NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  customer_name TEXT,
  customer_email TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL REFERENCES products(id),
  name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products
	  (name, slug, category, brand, price, rating, num_reviews, count_in_stock, is_featured, image, description) VALUES
	  ('Paracetamol 500mg', 'paracetamol-500mg', 'Pain Relief', 'Cipla', 25, 4, 12, 40, 1,
	   '/images/paracetamol-500mg.jpg', 'Analgesic and antipyretic tablets, strip of 15.'),
	  ('Ibuprofen 400mg', 'ibuprofen-400mg', 'Pain Relief', 'Abbott', 48, 4, 8, 25, 0,
	   '/images/ibuprofen-400mg.jpg', 'Anti-inflammatory tablets, strip of 10.'),
	  ('Amoxicillin 250mg', 'amoxicillin-250mg', 'Antibiotics', 'Cipla', 120, 5, 20, 12, 0,
	   '/images/amoxicillin-250mg.jpg', 'Broad-spectrum antibiotic capsules, strip of 10.'),
	  ('Vitamin C 1000mg', 'vitamin-c-1000mg', 'Vitamins', 'HealthKart', 299, 3, 5, 60, 1,
	   '/images/vitamin-c-1000mg.jpg', 'Effervescent immunity booster, 20 tablets.'),
	  ('Cetirizine 10mg', 'cetirizine-10mg', 'Allergy', 'Dr. Reddys', 35, 4, 9, 0, 0,
	   '/images/cetirizine-10mg.jpg', 'Antihistamine tablets, strip of 10.'),
	  ('Omeprazole 20mg', 'omeprazole-20mg', 'Digestive Health', 'Abbott', 85, 5, 15, 18, 0,
	   '/images/omeprazole-20mg.jpg', 'Acid reflux relief capsules, strip of 14.')`)

	tx.MustExec(`INSERT INTO reviews(product_id, author, rating, comment) VALUES
	  (1, 'Asha', 5, 'Works quickly, no side effects.'),
	  (1, 'Ravi', 4, 'Good value.'),
	  (3, 'Meena', 5, 'Prescribed by my doctor, genuine stock.')`)

	return tx.Commit()
}

// seedUsers ensures one USER and one ADMIN exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-demo", "user@medimart.test", "Demo User", "USER", "Passw0rd!"),
		mk("u-admin", "admin@medimart.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
