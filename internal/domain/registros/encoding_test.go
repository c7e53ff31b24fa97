package registros

import "testing"

func TestUnmarshalDetail_DispatchesByKind(t *testing.T) {
	d, err := UnmarshalDetail(KindStage, []byte(`{"previous_stage":"GERMINATION","new_stage":"SEEDLING"}`))
	if err != nil {
		t.Fatalf("UnmarshalDetail error: %v", err)
	}
	sd, ok := d.(StageDetail)
	if !ok {
		t.Fatalf("expected StageDetail, got %T", d)
	}
	if sd.PreviousStage != "GERMINATION" || sd.NewStage != "SEEDLING" {
		t.Fatalf("unexpected detail: %+v", sd)
	}
}

func TestUnmarshalDetail_NullIsNil(t *testing.T) {
	d, err := UnmarshalDetail(KindGeneral, []byte("null"))
	if err != nil {
		t.Fatalf("UnmarshalDetail error: %v", err)
	}
	if d != nil {
		t.Fatalf("expected nil detail for null payload, got %T", d)
	}
}

func TestUnmarshalDetail_UnknownKind(t *testing.T) {
	if _, err := UnmarshalDetail(Kind("NOTE"), []byte(`{}`)); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
