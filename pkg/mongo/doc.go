// Package mongo stores cache entries in a MongoDB collection.
//
// Each entry is a document keyed by the cache key with a binary value and an
// optional expires_at date. A TTL index on expires_at lets the server remove
// expired documents; reads ignore expired documents that are still present.
//
// # Usage
//
//	store, client, err := mongo.NewStorageFromConfig(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Disconnect(context.Background())
//
//	registry.Register(cache.DefaultInstance, store, cache.WithDuration(30*time.Minute))
//
// Configuration is read from MONGODB_* environment variables, see Config.
package mongo
