//go:build sqlite

package storage

func DefaultStoreKind() string {
	return StoreKindSQLite
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}
