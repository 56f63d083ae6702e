package seeder

import (
	"context"
	"fmt"
)

var (
	tierNames         = []string{"Basic", "Standard", "Premium", "Family"}
	subscriptionDays  = []int{30, 90, 180, 365}
	paymentAmounts    = []float64{9.99, 14.99, 19.99, 29.99}
	paymentStatuses   = []string{"Completed", "Pending", "Failed", "Refunded"}
	genres            = []string{"Action", "Comedy", "Drama", "Sci-Fi", "Horror", "Romance", "Documentary"}
	commentMaxChars   = 200
	episodesPerSeason = [2]int{8, 13}
)

func (p *Populator) populateUsers(ctx context.Context, s *session, count int, summary *Summary) (*IDPool, error) {
	g := p.generator
	used := make(map[string]struct{}, count)

	return p.populateEntity(ctx, s, TableUsers, count, nil, func(id int) ([]any, error) {
		email, err := g.UniqueEmail(used, p.opts.MaxUniqueAttempts)
		if err != nil {
			return nil, err
		}
		password, err := g.PasswordHash()
		if err != nil {
			return nil, err
		}
		return []any{
			id,
			g.Username(),
			email,
			password,
			g.DateBetween(-3, 0),
			fmt.Sprintf("/avatars/user_%d.jpg", id),
			g.Address(),
		}, nil
	}, summary)
}

func (p *Populator) populatePersons(ctx context.Context, s *session, count int, summary *Summary) (*IDPool, error) {
	g := p.generator
	return p.populateEntity(ctx, s, TablePersons, count, nil, func(id int) ([]any, error) {
		return []any{id, g.Name(), g.DateBetween(-80, -20)}, nil
	}, summary)
}

func (p *Populator) populateCompanies(ctx context.Context, s *session, count int, summary *Summary) (*IDPool, error) {
	g := p.generator
	return p.populateEntity(ctx, s, TableProductionCompanies, count, nil, func(id int) ([]any, error) {
		return []any{
			id,
			g.Company() + " Productions",
			g.IntRange(1950, 2024),
			fmt.Sprintf("Email: %s\nPhone: %s", g.CompanyEmail(), g.Phone()),
		}, nil
	}, summary)
}

func (p *Populator) populateLocations(ctx context.Context, s *session, count int, summary *Summary) (*IDPool, error) {
	g := p.generator
	return p.populateEntity(ctx, s, TableStorageLocations, count, nil, func(id int) ([]any, error) {
		return []any{
			id,
			fmt.Sprintf("server-%s-%d", g.Word(), g.IntRange(1, 99)),
			"/media/content/" + g.UUID(),
		}, nil
	}, summary)
}

func (p *Populator) populateSubscriptions(ctx context.Context, s *session, count int, users *IDPool, summary *Summary) (*IDPool, error) {
	g := p.generator
	return p.populateEntity(ctx, s, TableSubscriptions, count, []*IDPool{users}, func(id int) ([]any, error) {
		start := g.DateBetween(-2, 0)
		return []any{
			id,
			p.pick(users),
			g.PickString(tierNames),
			start,
			start.AddDate(0, 0, g.PickInt(subscriptionDays)),
		}, nil
	}, summary)
}

func (p *Populator) populatePayments(ctx context.Context, s *session, count int, subscriptions *IDPool, summary *Summary) error {
	g := p.generator
	_, err := p.populateEntity(ctx, s, TablePayments, count, []*IDPool{subscriptions}, func(id int) ([]any, error) {
		return []any{
			id,
			p.pick(subscriptions),
			g.PickFloat(paymentAmounts),
			g.DateBetween(-1, 0),
			g.PickString(paymentStatuses),
		}, nil
	}, summary)
	return err
}

func (p *Populator) populateMedia(ctx context.Context, s *session, count int, persons, companies, locations *IDPool, summary *Summary) (*IDPool, error) {
	g := p.generator
	return p.populateEntity(ctx, s, TableMedia, count, []*IDPool{persons, companies, locations}, func(id int) ([]any, error) {
		return []any{
			id,
			g.Title(),
			g.PickString(genres),
			g.IntRange(1990, 2024),
			g.Rating(1.0, 10.0),
			p.pick(persons),
			p.pick(companies),
			p.pick(locations),
		}, nil
	}, summary)
}

// splitMedia assigns every media id to exactly one of movies or series and
// returns the series with their season counts.
func (p *Populator) splitMedia(ctx context.Context, s *session, media *IDPool, summary *Summary) ([]Series, error) {
	g := p.generator
	p.info("  📝 Populating movies and series from %d media entries...", media.Len())

	movies := newBatch(p.table(TableMovies), p.opts.BatchSize)
	seriesRows := newBatch(p.table(TableSeries), p.opts.BatchSize)
	var series []Series

	for _, id := range media.ids {
		if g.Chance(p.opts.MovieRatio) {
			if err := movies.add(ctx, s, []any{id, g.IntRange(80, 180)}); err != nil {
				return nil, err
			}
			continue
		}

		seasons := g.IntRange(1, 8)
		if err := seriesRows.add(ctx, s, []any{id, seasons}); err != nil {
			return nil, err
		}
		series = append(series, Series{ID: id, Seasons: seasons})
	}

	if err := movies.flush(ctx, s); err != nil {
		return nil, err
	}
	if err := seriesRows.flush(ctx, s); err != nil {
		return nil, err
	}
	if err := s.checkpoint(ctx); err != nil {
		return nil, err
	}

	summary.record(TableMovies, movies.written)
	summary.record(TableSeries, seriesRows.written)
	p.success("  ✅ Movies (%d) and series (%d) population completed", movies.written, seriesRows.written)
	return series, nil
}

func (p *Populator) populateSeriesStorage(ctx context.Context, s *session, series []Series, summary *Summary) error {
	g := p.generator
	p.info("  📝 Populating series storage for %d series...", len(series))

	b := newBatch(p.table(TableSeriesStorage), p.opts.BatchSize)
	for _, sr := range series {
		row := []any{
			sr.ID,
			"series-server-" + g.Word(),
			fmt.Sprintf("/series/%d/%s", sr.ID, g.UUID()),
		}
		if err := b.add(ctx, s, row); err != nil {
			return err
		}
	}
	if err := b.flush(ctx, s); err != nil {
		return err
	}
	if err := s.checkpoint(ctx); err != nil {
		return err
	}

	summary.record(TableSeriesStorage, b.written)
	p.success("  ✅ Series storage population completed")
	return nil
}

// populateEpisodes writes, for every series, each season 1..Seasons with a
// dense run of episode numbers. Episode ids increase across all series.
func (p *Populator) populateEpisodes(ctx context.Context, s *session, series []Series, summary *Summary) error {
	g := p.generator
	p.info("  📝 Populating episodes for %d series...", len(series))

	b := newBatch(p.table(TableEpisodes), p.opts.BatchSize)
	episodeID := 1
	for _, sr := range series {
		for season := 1; season <= sr.Seasons; season++ {
			episodes := g.IntRange(episodesPerSeason[0], episodesPerSeason[1])
			for number := 1; number <= episodes; number++ {
				row := []any{episodeID, sr.ID, season, number, g.Phrase(), g.IntRange(20, 60)}
				if err := b.add(ctx, s, row); err != nil {
					return err
				}
				episodeID++
			}
		}
	}
	if err := b.flush(ctx, s); err != nil {
		return err
	}
	if err := s.checkpoint(ctx); err != nil {
		return err
	}

	summary.record(TableEpisodes, b.written)
	p.success("  ✅ Episodes population completed (%d rows)", b.written)
	return nil
}

func (p *Populator) populateComments(ctx context.Context, s *session, count int, users, media *IDPool, summary *Summary) error {
	g := p.generator
	_, err := p.populateEntity(ctx, s, TableComments, count, []*IDPool{users, media}, func(id int) ([]any, error) {
		return []any{
			id,
			p.pick(users),
			p.pick(media),
			g.Text(commentMaxChars),
			g.DateBetween(-1, 0),
		}, nil
	}, summary)
	return err
}

func (p *Populator) populateRatings(ctx context.Context, s *session, count int, users, media *IDPool, summary *Summary) error {
	g := p.generator
	_, err := p.populateEntity(ctx, s, TableRatings, count, []*IDPool{users, media}, func(id int) ([]any, error) {
		return []any{id, p.pick(users), p.pick(media), g.Rating(1.0, 10.0)}, nil
	}, summary)
	return err
}

func (p *Populator) populateWatchLater(ctx context.Context, s *session, count int, users, media *IDPool, summary *Summary) error {
	_, err := p.populateEntity(ctx, s, TableWatchLater, count, []*IDPool{users, media}, func(id int) ([]any, error) {
		return []any{id, p.pick(users), p.pick(media)}, nil
	}, summary)
	return err
}
