// Package config provides configuration management for db-compare.
//
// Application settings come from environment variables and an optional .env file, with
// defaults declared in struct tags:
//   - Server: HTTP port, API key and the comparisons file served by the API
//   - Storage: S3/MinIO credentials and the bucket receiving reports
//   - Log: logging level and format
//   - Output: report folder, upload switch and object prefix
//   - Compare: diff worker count
//
// Comparison descriptors live in a separate JSON, YAML or TOML file loaded with
// LoadComparisons:
//
//	{
//	  "comparisons": [{
//	    "name": "customers",
//	    "summary_filename": "customers_summary.txt",
//	    "differences_filename": "customers_differences.json",
//	    "match_fields": ["id"],
//	    "compare_fields": ["name", "email"],
//	    "source": {"type": "mongodb", "conn_string": "mongodb://localhost/crm", "table_name": "customers"},
//	    "target": {"type": "sqlserver", "conn_string": "sqlserver://...", "table_name": "dbo.Customers"}
//	  }]
//	}
package config
