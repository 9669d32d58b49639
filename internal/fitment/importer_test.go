package fitment

import "testing"

func TestImportRowValidate(t *testing.T) {
	// 5 rows, row 3 missing make: exactly one row must fail validation so
	// the batch still yields 4 created ranges.
	rows := []ImportRow{
		{Make: "Ford", Model: "F-150", YearStart: 2015, YearEnd: 2020},
		{Make: "Chevrolet", Model: "Silverado", YearStart: 2019, YearEnd: 2023},
		{Model: "Tacoma", YearStart: 2016, YearEnd: 2023},
		{Make: "Toyota", Model: "Tundra", YearStart: 2014, YearEnd: 2021},
		{Make: "Ram", Model: "1500", YearStart: 2019, YearEnd: 2024},
	}

	failed := 0
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			failed++
			if i != 2 {
				t.Errorf("Row %d unexpectedly invalid: %v", i+1, err)
			}
		}
	}
	if failed != 1 {
		t.Errorf("Expected exactly 1 invalid row, got %d", failed)
	}
}

func TestImportRowValidateAssociation(t *testing.T) {
	ok := ImportRow{ProductID: "prod-1", Make: "Ford", Model: "F-150", Year: 2018}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Valid association row rejected: %v", err)
	}
	if !ok.IsAssociation() {
		t.Error("Row with a product id should classify as association")
	}

	missingYear := ImportRow{ProductID: "prod-1", Make: "Ford", Model: "F-150"}
	if err := missingYear.Validate(); err == nil {
		t.Error("Association row without a year should fail validation")
	}
}

func TestImportRowValidateInvertedYears(t *testing.T) {
	row := ImportRow{Make: "Ford", Model: "F-150", YearStart: 2020, YearEnd: 2015}
	if err := row.Validate(); err == nil {
		t.Error("Inverted year bounds should fail validation")
	}
}
