// Package services implements the core business logic: the hybrid search
// engine (keyword + semantic retrieval, weighted score fusion, caching,
// history) and the ingestion pipeline that turns source files into
// persisted, indexed articles.
//
// Services implement driving ports and depend on driven ports. They
// contain no storage or transport code themselves.
package services
