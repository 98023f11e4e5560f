package entity

import "testing"

func TestParsePowerState(t *testing.T) {
	tests := []struct {
		raw  string
		want PowerState
	}{
		{"poweredOn", PoweredOn},
		{"POWERED ON", PoweredOn},
		{" poweredOff ", PoweredOff},
		{"powered off", PoweredOff},
		{"Suspended", Suspended},
		{"unknown-state", PowerState("unknown-state")},
	}
	for _, tt := range tests {
		if got := ParsePowerState(tt.raw); got != tt.want {
			t.Errorf("ParsePowerState(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIsPoweredOn(t *testing.T) {
	if !PoweredOn.IsPoweredOn() {
		t.Error("poweredOn should count as running")
	}
	for _, state := range []PowerState{PoweredOff, Suspended, ""} {
		if state.IsPoweredOn() {
			t.Errorf("%q should not count as running", state)
		}
	}
}

func TestVMRecordSetAll(t *testing.T) {
	set := VMRecordSet{
		Included: []VMRecord{{UUID: "a"}, {UUID: "b"}},
		Excluded: []VMRecord{{UUID: "c"}},
	}
	all := set.All()
	if len(all) != 3 || all[0].UUID != "a" || all[2].UUID != "c" {
		t.Errorf("All() = %v", all)
	}
}
