// Package config loads the YAML configuration of the consolidation pipeline.
//
// # Schema Overview
//
//	version: "1"
//	uid:
//	  namespace: cs
//	  restrictedKeywords: [uid, locale, tags]   # string or list
//	  reservedPatterns: "^[0-9]"                # string or list
//	  identifierKeys: [uid, contentstackFieldUid, contentstackUid, backupFieldUid]
//	typeOrder:
//	  classifiers:
//	    - pattern: customembed
//	      category: customembed
//	merge:
//	  maxDepth: 64
//	output:
//	  chunkSize: 100
//	  workers: 4
//	log:
//	  level: info
//
// Omitted sections fall back to the defaults of the uid, typeorder and merge
// packages.
package config
