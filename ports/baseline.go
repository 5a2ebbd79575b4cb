package ports

import (
	"context"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
)

// BaselineProviderPort supplies the economic indicator snapshot a
// simulation starts from. Implementations own retrieval and caching;
// freshness validation happens in the engine, against the snapshot
// this port returns.
type BaselineProviderPort interface {
	Snapshot(ctx context.Context) (baseline.Data, error)
}
