package modelstorage

type UserStorageEntry struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	Balance      string `db:"balance"`
	Version      int64  `db:"version"`
	RegisteredAt string `db:"registered_at"`
}

type ProductStorageEntry struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Price     string `db:"price"`
	CreatedAt string `db:"created_at"`
}
