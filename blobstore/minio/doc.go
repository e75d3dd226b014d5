// Package minio stores grid snapshots in MinIO or any S3-compatible service
// (Ceph, Garage, SeaweedFS) through the MinIO Go client, without pulling in
// the AWS SDK.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "my-bucket", "grids/", minioblob.WithPartSize(8<<20))
//	grids := gridstore.New(store)
//
// Objects are written with SnapshotContentType. Create streams through
// PutObject with an unknown length, so large snapshots upload in parts.
// Reads are ranged GETs pinned to the ETag returned when the blob was opened.
package minio
