// Package cache keeps decoded assets (textures, meshes) keyed by path so
// that scenes rendered frame after frame decode each file once.
//
//	textures := cache.New[*texture.Texture](64)
//	tex, err := textures.GetOrLoad(path, func() (*texture.Texture, error) {
//	    return texture.Load(path)
//	})
//
// Failed loads are not cached; the next request retries.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
