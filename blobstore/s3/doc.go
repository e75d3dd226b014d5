// Package s3 stores grid snapshots in Amazon S3.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("reconstructions/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	grids := gridstore.New(store, gridstore.WithCompression(gridstore.CompressionZSTD))
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart uploads with CRC32C checksums for large grids
//   - Automatic pagination for listing
//   - DDBCommitStore: atomic CURRENT pointer via DynamoDB conditional writes
//   - ExpressStore: S3 Express One Zone directory buckets
package s3
