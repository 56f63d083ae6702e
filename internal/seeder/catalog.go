package seeder

const (
	TableUsers               = "users"
	TablePersons             = "persons"
	TableProductionCompanies = "production_companies"
	TableStorageLocations    = "storage_locations"
	TableSubscriptions       = "subscriptions"
	TablePayments            = "payments"
	TableMedia               = "media"
	TableMovies              = "movies"
	TableSeries              = "series"
	TableSeriesStorage       = "series_storage"
	TableEpisodes            = "episodes"
	TableComments            = "comments"
	TableRatings             = "ratings"
	TableWatchLater          = "watch_later_lists"
)

func fk(column, table, refColumn string) ForeignKey {
	return ForeignKey{Column: column, RefTable: table, RefColumn: refColumn}
}

// Catalog returns the streaming schema tables in pipeline order.
func Catalog() []*TableInfo {
	tables := []*TableInfo{
		{
			Name:       TableUsers,
			Columns:    []string{"user_id", "username", "email", "password", "registration_date", "pfp_path", "address"},
			PrimaryKey: "user_id",
		},
		{
			Name:       TablePersons,
			Columns:    []string{"person_id", "name", "birth_date"},
			PrimaryKey: "person_id",
		},
		{
			Name:       TableProductionCompanies,
			Columns:    []string{"company_id", "name", "establishment_year", "contact_info"},
			PrimaryKey: "company_id",
		},
		{
			Name:       TableStorageLocations,
			Columns:    []string{"location_id", "server_name", "file_path"},
			PrimaryKey: "location_id",
		},
		{
			Name:        TableSubscriptions,
			Columns:     []string{"subscription_id", "user_id", "tier_name", "start_date", "end_date"},
			PrimaryKey:  "subscription_id",
			ForeignKeys: []ForeignKey{fk("user_id", TableUsers, "user_id")},
		},
		{
			Name:        TablePayments,
			Columns:     []string{"payment_id", "subscription_id", "amount", "payment_date", "transaction_status"},
			PrimaryKey:  "payment_id",
			ForeignKeys: []ForeignKey{fk("subscription_id", TableSubscriptions, "subscription_id")},
		},
		{
			Name: TableMedia,
			Columns: []string{
				"media_id", "title", "genre", "production_year", "average_rating",
				"director_id", "production_company_id", "location_id",
			},
			PrimaryKey: "media_id",
			ForeignKeys: []ForeignKey{
				fk("director_id", TablePersons, "person_id"),
				fk("production_company_id", TableProductionCompanies, "company_id"),
				fk("location_id", TableStorageLocations, "location_id"),
			},
		},
		{
			Name:        TableMovies,
			Columns:     []string{"media_id", "duration"},
			PrimaryKey:  "media_id",
			ForeignKeys: []ForeignKey{fk("media_id", TableMedia, "media_id")},
		},
		{
			Name:        TableSeries,
			Columns:     []string{"media_id", "total_seasons"},
			PrimaryKey:  "media_id",
			ForeignKeys: []ForeignKey{fk("media_id", TableMedia, "media_id")},
		},
		{
			Name:        TableSeriesStorage,
			Columns:     []string{"series_id", "storage_server", "storage_path"},
			PrimaryKey:  "series_id",
			ForeignKeys: []ForeignKey{fk("series_id", TableSeries, "media_id")},
		},
		{
			Name:        TableEpisodes,
			Columns:     []string{"episode_id", "series_id", "season_number", "episode_number", "title", "duration"},
			PrimaryKey:  "episode_id",
			ForeignKeys: []ForeignKey{fk("series_id", TableSeries, "media_id")},
		},
		{
			Name:       TableComments,
			Columns:    []string{"comment_id", "user_id", "media_id", "comment_text", "comment_date"},
			PrimaryKey: "comment_id",
			ForeignKeys: []ForeignKey{
				fk("user_id", TableUsers, "user_id"),
				fk("media_id", TableMedia, "media_id"),
			},
		},
		{
			Name:       TableRatings,
			Columns:    []string{"rating_id", "user_id", "media_id", "rating_value"},
			PrimaryKey: "rating_id",
			ForeignKeys: []ForeignKey{
				fk("user_id", TableUsers, "user_id"),
				fk("media_id", TableMedia, "media_id"),
			},
		},
		{
			Name:       TableWatchLater,
			Columns:    []string{"list_id", "user_id", "media_id"},
			PrimaryKey: "list_id",
			ForeignKeys: []ForeignKey{
				fk("user_id", TableUsers, "user_id"),
				fk("media_id", TableMedia, "media_id"),
			},
		},
	}

	for _, t := range tables {
		for _, f := range t.ForeignKeys {
			t.Dependencies = append(t.Dependencies, f.RefTable)
		}
	}
	return tables
}

// CatalogGraph builds the dependency graph for Catalog.
func CatalogGraph() *DependencyGraph {
	g := NewDependencyGraph()
	for _, t := range Catalog() {
		g.AddTable(t)
	}
	return g
}
