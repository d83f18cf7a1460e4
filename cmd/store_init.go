package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/mlpipe/internal/store"
)

// initStore opens the run registry and applies migrations. Callers should
// defer st.Close().
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}
