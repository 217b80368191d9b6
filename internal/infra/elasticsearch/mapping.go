package elasticsearch

// moviesIndexMapping movies 索引结构
// name 使用 search_as_you_type 支持输入联想
const moviesIndexMapping = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"id": {"type": "long"},
			"name": {
				"type": "search_as_you_type",
				"fields": {"keyword": {"type": "keyword", "ignore_above": 200}}
			},
			"description": {"type": "text"},
			"genre": {"type": "keyword"},
			"total_views": {"type": "long"},
			"download_count": {"type": "long"},
			"uploaded_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
		}
	}
}`
