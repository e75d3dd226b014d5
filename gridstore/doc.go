// Package gridstore persists scalar and vector grids.
//
// Snapshots use a small self-describing binary format (see Encode) with an
// LZ4 or ZSTD compressed payload and a CRC32C checksum. A Store writes
// snapshots to any blobstore.BlobStore and tracks the committed one through
// a CURRENT pointer:
//
//	store := gridstore.New(blobstore.NewLocalStore(dir),
//	    gridstore.WithCompression(gridstore.CompressionZSTD))
//	if err := store.Save(ctx, "sdf-0001.igrd", gridstore.FromScalar3(sdf)); err != nil { ... }
//	if err := store.Commit(ctx, "sdf-0001.igrd"); err != nil { ... }
//
//	snap, name, err := store.Latest(ctx)
//	sdf, err := snap.Scalar3()
package gridstore
