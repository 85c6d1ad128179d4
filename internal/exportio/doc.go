// Package exportio reads raw content-model exports and writes merged content
// models as chunked JSON files.
//
// Output layout of Writer.Write:
//
//	<dir>/schema.json        index of content types and chunk files
//	<dir>/chunk-0001.json    up to chunkSize merged models
//	<dir>/chunk-0002.json    ...
package exportio
