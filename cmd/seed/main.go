package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"stagedoor/internal/events"
	"stagedoor/internal/geometry"
	"stagedoor/internal/layouts"
	"stagedoor/internal/requests"
	"stagedoor/internal/shared/config"
	"stagedoor/internal/shared/database"

	"github.com/google/uuid"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Stagedoor Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\nCleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("Database cleaned successfully")

	fmt.Println("\nSeeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("Database seeded successfully")

	fmt.Println("\nSeeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"seat_requests",
		"events",
		"seating_layouts",
	}

	pg := s.db.GetPostgreSQL()
	for _, table := range tables {
		if err := pg.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll populates the database with a default layout, a cocktail template,
// a demo event and a sample pending request.
func (s *Seeder) SeedAll() error {
	ctx := context.Background()
	layoutRepo := layouts.NewRepository(s.db.GetPostgreSQL())
	eventRepo := events.NewRepository(s.db.GetPostgreSQL())
	requestRepo := requests.NewRepository(s.db.GetPostgreSQL())

	defaultLayout, err := s.seedDefaultLayout(ctx, layoutRepo)
	if err != nil {
		return fmt.Errorf("failed to seed default layout: %w", err)
	}
	fmt.Printf("  Seeded default layout %q (%s)\n", defaultLayout.Name, defaultLayout.ID)

	cocktail, err := s.seedCocktailLayout(ctx, layoutRepo)
	if err != nil {
		return fmt.Errorf("failed to seed cocktail layout: %w", err)
	}
	fmt.Printf("  Seeded template layout %q (%s)\n", cocktail.Name, cocktail.ID)

	event, err := s.seedDemoEvent(ctx, eventRepo, defaultLayout.ID)
	if err != nil {
		return fmt.Errorf("failed to seed demo event: %w", err)
	}
	fmt.Printf("  Seeded event %q (%s)\n", event.Name, event.ID)

	request, err := s.seedDemoRequest(ctx, requestRepo, event.ID)
	if err != nil {
		return fmt.Errorf("failed to seed demo request: %w", err)
	}
	fmt.Printf("  Seeded pending request for %s (%s)\n", request.CustomerName, request.ID)

	return nil
}

func (s *Seeder) seedDefaultLayout(ctx context.Context, repo layouts.Repository) (*layouts.SeatingLayout, error) {
	doc := &layouts.Document{
		StagePosition: geometry.Point{X: 50, Y: 5},
		StageSize:     geometry.Size{Width: 300, Height: 60},
		Canvas: layouts.CanvasSettings{
			Width:    1200,
			Height:   800,
			GridSize: 5,
			ShowGrid: true,
		},
	}

	// Two rows of tables on the main floor, a bar along the side wall,
	// booths at the back and an entrance marker.
	placements := []struct {
		elementType geometry.ElementType
		shape       geometry.TableShape
		section     string
		row         string
		x, y        float64
		rotation    float64
	}{
		{geometry.ElementTable, geometry.ShapeTable6, "Main Floor", "A", 30, 35, 0},
		{geometry.ElementTable, geometry.ShapeTable6, "Main Floor", "A", 50, 35, 0},
		{geometry.ElementTable, geometry.ShapeTable6, "Main Floor", "A", 70, 35, 0},
		{geometry.ElementTable, geometry.ShapeRound8, "Main Floor", "B", 35, 60, 0},
		{geometry.ElementTable, geometry.ShapeRound8, "Main Floor", "B", 65, 60, 0},
		{geometry.ElementTable, geometry.ShapeBar6, "Bar", "1", 10, 50, 90},
		{geometry.ElementTable, geometry.ShapeBooth4, "Back Wall", "1", 40, 85, 0},
		{geometry.ElementTable, geometry.ShapeBooth4, "Back Wall", "2", 60, 85, 0},
	}

	for _, p := range placements {
		e := layouts.NewElement(p.elementType, p.shape, p.section, p.row)
		e.Rotation = p.rotation
		doc.Elements = append(doc.Elements, e)
		if err := doc.PlaceElement(e.ID, geometry.Point{X: p.x, Y: p.y}, true); err != nil {
			return nil, err
		}
	}

	entrance := layouts.NewElement(geometry.ElementMarker, "", "Entrance", "")
	entrance.Width = 80
	entrance.Height = 40
	doc.Elements = append(doc.Elements, entrance)
	if err := doc.PlaceElement(entrance.ID, geometry.Point{X: 90, Y: 95}, false); err != nil {
		return nil, err
	}

	doc.NormalizeForSave()

	layout := &layouts.SeatingLayout{
		ID:          uuid.New(),
		Name:        "Main Hall",
		Description: "House default: dinner seating with bar and booths",
		IsDefault:   true,
	}
	if err := layout.Encode(doc); err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, layout); err != nil {
		return nil, err
	}
	return layout, nil
}

func (s *Seeder) seedCocktailLayout(ctx context.Context, repo layouts.Repository) (*layouts.SeatingLayout, error) {
	doc := &layouts.Document{
		StagePosition: geometry.Point{X: 50, Y: 5},
		StageSize:     geometry.Size{Width: 300, Height: 60},
		Canvas: layouts.CanvasSettings{
			Width:    1200,
			Height:   800,
			GridSize: 5,
			ShowGrid: true,
		},
	}

	placements := []struct {
		shape geometry.TableShape
		row   string
		x, y  float64
	}{
		{geometry.ShapeStanding10, "1", 35, 40},
		{geometry.ShapeStanding10, "2", 65, 40},
		{geometry.ShapeRound6, "3", 30, 70},
		{geometry.ShapeRound6, "4", 50, 70},
		{geometry.ShapeRound6, "5", 70, 70},
	}

	for _, p := range placements {
		e := layouts.NewElement(geometry.ElementTable, p.shape, "Floor", p.row)
		doc.Elements = append(doc.Elements, e)
		if err := doc.PlaceElement(e.ID, geometry.Point{X: p.x, Y: p.y}, true); err != nil {
			return nil, err
		}
	}

	doc.NormalizeForSave()

	layout := &layouts.SeatingLayout{
		ID:          uuid.New(),
		Name:        "Cocktail Night",
		Description: "Standing room up front, rounds at the back",
	}
	if err := layout.Encode(doc); err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, layout); err != nil {
		return nil, err
	}
	return layout, nil
}

func (s *Seeder) seedDemoEvent(ctx context.Context, repo events.Repository, layoutID uuid.UUID) (*events.Event, error) {
	event := &events.Event{
		ID:             uuid.New(),
		Name:           "Friday Jazz Quartet",
		Description:    "Late set with the house quartet",
		StartsAt:       time.Now().UTC().AddDate(0, 0, 7).Truncate(time.Hour),
		SeatingEnabled: true,
		LayoutID:       &layoutID,
	}
	if err := repo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Seeder) seedDemoRequest(ctx context.Context, repo requests.Repository, eventID uuid.UUID) (*requests.SeatRequest, error) {
	request := &requests.SeatRequest{
		ID:           uuid.New(),
		EventID:      eventID,
		CustomerName: "Dana Whitfield",
		Email:        "dana.whitfield@example.com",
		Phone:        "+1 415 555 0184",
		Status:       requests.StatusPending,
	}
	if err := request.SetSeats([]string{"Main Floor-A-1", "Main Floor-A-2"}); err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}
