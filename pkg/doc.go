// Package pkg provides the core libraries for Omicalign identity alignment.
//
// # Overview
//
// Omicalign resolves which identifiers across heterogeneous omics datasets
// name the same biological entity. The pkg directory is organized into
// these main areas:
//
//  1. [dataset] - Input contract (datasets, records, cross-references, manifests)
//  2. [align] - Domain logic (classification policy, alias grouping, type resolution)
//  3. [resultio] - Serialization of alignment results
//  4. [cache], [store] - Infrastructure (result cache, MongoDB run store)
//  5. [pipeline] - Orchestration (load → align → export)
//  6. [render], [server] - Output surfaces (group graphs, query API)
//
// # Architecture
//
// The typical data flow through Omicalign:
//
//	TOML manifest / CSV tables
//	         ↓
//	    [dataset] package (materialize records and cross-references)
//	         ↓
//	    [align] package (classify, group, resolve types)
//	         ↓
//	    [resultio] package (canonical JSON document)
//	         ↓
//	    files, MongoDB, HTTP API, Graphviz diagrams
//
// # Quick Start
//
//	datasets, err := dataset.LoadManifest("datasets.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := align.Align(datasets...)
//	if err := resultio.WriteFile(res, "alignment.json"); err != nil {
//	    log.Fatal(err)
//	}
package pkg
