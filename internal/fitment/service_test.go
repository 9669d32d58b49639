package fitment

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/fitgear/ymmgo/internal/config"
	"github.com/fitgear/ymmgo/internal/database"
	"github.com/fitgear/ymmgo/internal/models"
	"github.com/fitgear/ymmgo/internal/services/catalog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPGPort = 5599

var testDB *database.DB

// TestMain boots one embedded PostgreSQL for the store-backed tests. When
// the embedded server cannot start (no cached binaries, port taken), those
// tests skip and the pure-logic tests still run.
func TestMain(m *testing.M) {
	dataPath, err := os.MkdirTemp("", "ymmfit-pg-")
	if err != nil {
		log.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dataPath)

	epg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		DataPath(filepath.Join(dataPath, "pg")).
		Port(testPGPort).
		Database("ymmfit_test").
		Username("postgres").
		Password("postgres"))

	if err := epg.Start(); err == nil {
		defer epg.Stop()

		gdb, err := gorm.Open(postgres.Open(testDSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err == nil {
			testDB = &database.DB{DB: gdb}
			if err := testDB.AutoMigrate(&models.VehicleRange{}, &models.ProductVehicleLink{}); err != nil {
				log.Printf("test schema migration failed: %v", err)
				testDB = nil
			}
		}
	}

	m.Run()
}

func testDSN() string {
	return fmt.Sprintf("host=localhost port=%d user=postgres password=postgres dbname=ymmfit_test sslmode=disable", testPGPort)
}

// newStoreService returns an engine over the shared test store. Tests keep
// to their own scope so they do not need to clean up after each other.
func newStoreService(t *testing.T) *Service {
	t.Helper()
	if testDB == nil {
		t.Skip("embedded postgres unavailable")
	}
	return NewService(testDB, catalog.NewClient(config.GatewayConfig{}))
}

func TestBulkImportRowTolerance(t *testing.T) {
	svc := newStoreService(t)
	scope := "import-tolerance"

	// Row 3 is malformed (missing make); the other four must still land.
	rows := []ImportRow{
		{Make: "Ford", Model: "F-150", YearStart: 2015, YearEnd: 2020},
		{Make: "Chevrolet", Model: "Silverado", YearStart: 2019, YearEnd: 2023},
		{Model: "Tacoma", YearStart: 2016, YearEnd: 2023},
		{Make: "Toyota", Model: "Tundra", YearStart: 2014, YearEnd: 2021},
		{Make: "Ram", Model: "1500", YearStart: 2019, YearEnd: 2024},
	}

	report := svc.BulkImport(scope, rows)
	if report.Created != 4 {
		t.Errorf("Created: got %d, want 4", report.Created)
	}
	if report.Failed != 1 {
		t.Errorf("Failed: got %d, want 1", report.Failed)
	}
	if len(report.Errors) != 1 || report.Errors[0].Row != 3 {
		t.Errorf("Errors should pinpoint row 3, got %+v", report.Errors)
	}

	var count int64
	if err := testDB.Model(&models.VehicleRange{}).Where("scope = ?", scope).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count ranges: %v", err)
	}
	if count != 4 {
		t.Errorf("Stored ranges: got %d, want 4", count)
	}
}

func TestBulkImportAssociationRows(t *testing.T) {
	svc := newStoreService(t)
	scope := "import-assoc"

	report := svc.BulkImport(scope, []ImportRow{
		{Make: "Ford", Model: "F-150", YearStart: 2015, YearEnd: 2020},
		{ProductID: "prod-10", Make: "Ford", Model: "F-150", Year: 2018},
		{ProductID: "prod-10", Make: "Ford", Model: "F-150", Year: 2018}, // duplicate, idempotent
		{ProductID: "prod-11", Make: "Honda", Model: "Ridgeline", Year: 2021},
	})
	if report.Created != 1 {
		t.Errorf("Created: got %d, want 1", report.Created)
	}
	if report.Linked != 3 {
		t.Errorf("Linked: got %d, want 3", report.Linked)
	}
	if report.Failed != 0 {
		t.Errorf("Failed: got %d, want 0, errors: %+v", report.Failed, report.Errors)
	}

	// The duplicate row must not produce a second link
	var linkCount int64
	if err := testDB.Model(&models.ProductVehicleLink{}).
		Where("external_product_id = ?", "prod-10").
		Count(&linkCount).Error; err != nil {
		t.Fatalf("Failed to count links: %v", err)
	}
	if linkCount != 1 {
		t.Errorf("prod-10 links: got %d, want 1", linkCount)
	}

	// Association for an uncovered vehicle creates a single-year range
	var rng models.VehicleRange
	if err := testDB.Where("scope = ? AND make = ?", scope, "Honda").First(&rng).Error; err != nil {
		t.Fatalf("Expected auto-created range for Honda: %v", err)
	}
	if rng.YearStart != 2021 || rng.YearEnd != 2021 {
		t.Errorf("Auto-created range should cover exactly 2021, got [%d-%d]", rng.YearStart, rng.YearEnd)
	}
}

func TestBulkImportStoreErrorSurfacesAsRowError(t *testing.T) {
	if testDB == nil {
		t.Skip("embedded postgres unavailable")
	}

	// Second session over the same server, then closed: every query fails
	// the way a dropped connection would mid-import.
	gdb, err := gorm.Open(postgres.Open(testDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open second session: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.Close()

	svc := NewService(&database.DB{DB: gdb}, catalog.NewClient(config.GatewayConfig{}))

	report := svc.BulkImport("import-broken", []ImportRow{
		{ProductID: "prod-20", Make: "Ford", Model: "F-150", Year: 2018},
	})
	if report.Failed != 1 || report.Linked != 0 {
		t.Fatalf("Store error must fail the row, got linked=%d failed=%d", report.Linked, report.Failed)
	}
	// The failure must come from the range lookup, not from a create of a
	// range the lookup never confirmed was missing.
	if !strings.Contains(report.Errors[0].Message, "look up") {
		t.Errorf("Row error should surface the lookup failure, got %q", report.Errors[0].Message)
	}
}

func TestDissociateVehicleMissingLinkNoOp(t *testing.T) {
	svc := newStoreService(t)
	scope := "dissoc-noop"

	rng := models.VehicleRange{Scope: scope, Make: "Ford", Model: "F-150", YearStart: 2015, YearEnd: 2020, IsActive: true}
	if err := testDB.Create(&rng).Error; err != nil {
		t.Fatalf("Failed to create range: %v", err)
	}

	// Never-linked pair: a no-op success, not an error
	if err := svc.DissociateVehicle("prod-30", rng.ID); err != nil {
		t.Errorf("Dissociating a missing link should succeed, got %v", err)
	}

	linked, _, err := svc.AssociateVehicles(scope, "prod-30", []uint{rng.ID})
	if err != nil {
		t.Fatalf("Failed to associate: %v", err)
	}
	if linked != 1 {
		t.Fatalf("Expected 1 link, got %d", linked)
	}

	if err := svc.DissociateVehicle("prod-30", rng.ID); err != nil {
		t.Errorf("Dissociating an existing link failed: %v", err)
	}
	// Second removal of the same link is still a success
	if err := svc.DissociateVehicle("prod-30", rng.ID); err != nil {
		t.Errorf("Repeated dissociate should be a no-op, got %v", err)
	}

	var count int64
	if err := testDB.Model(&models.ProductVehicleLink{}).
		Where("external_product_id = ? AND vehicle_range_id = ?", "prod-30", rng.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("Failed to count links: %v", err)
	}
	if count != 0 {
		t.Errorf("Link should be gone, found %d", count)
	}
}
