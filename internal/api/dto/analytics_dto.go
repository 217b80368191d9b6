package dto

// VisitorStatsRow 访客列表行
// visit_count 是访客登记次数；该 IP 的观看记录条数在 watch_count
type VisitorStatsRow struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	IP         string `json:"ip"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Online     bool   `json:"online"`
	VisitCount int64  `json:"visit_count"`
	WatchCount int64  `json:"watch_count"`
	LastVisit  string `json:"last_visit"`
	LastMovie  string `json:"last_movie"`
}

// VisitorStatsData 访客列表
type VisitorStatsData struct {
	Visitors []VisitorStatsRow `json:"visitors"`
}

// ChartPoint 7 日图表中的一天
type ChartPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// CountryPoint 国家分布
type CountryPoint struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

// MapPoint 地图上的一个访客，计数字段含义与 VisitorStatsRow 相同
type MapPoint struct {
	IP         string  `json:"ip"`
	Country    string  `json:"country"`
	City       string  `json:"city"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Online     bool    `json:"online"`
	VisitCount int64   `json:"visit_count"`
	WatchCount int64   `json:"watch_count"`
}

// DataList 以 data 字段包裹的列表返回
type DataList[T any] struct {
	Data []T `json:"data"`
}
