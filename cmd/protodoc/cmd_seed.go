package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"protodoc/pkg/document"
	"protodoc/pkg/source"
)

// newSeedCmd creates the "protodoc seed" subcommand, which populates a
// store with a demonstration protocol.
func newSeedCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a store with a demo protocol",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := source.Open(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			p := demoProtocol()
			if err := store.Save(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded protocol %s (%q) into %s\n", p.ID, p.Title, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "protodoc.db", "SQLite store to create or update")

	return cmd
}

// demoProtocol builds a protocol touching every element type the layout
// engine handles.
func demoProtocol() document.Protocol {
	flow := 14.2
	signed := time.Date(2025, time.February, 11, 15, 30, 0, 0, time.UTC)
	recorded := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)

	return document.Protocol{
		ID:    "demo-iq-001",
		Title: "Filling Line Installation Qualification",
		Elements: []document.ProtocolElement{
			{ID: "d1", Type: document.TypeNumericValue, Label: "Flow rate (L/min)",
				DeclaredWidth: 4, Order: 1, Section: "Measurements",
				Payload: document.NumericPayload{Value: &flow}},
			{ID: "d2", Type: document.TypeSinglePicklist, Label: "Line status",
				DeclaredWidth: 4, Order: 2, Section: "Measurements",
				Payload: document.ChoicePayload{Selected: "Operational"}},
			{ID: "d3", Type: document.TypeMultiPicklist, Label: "Checked subsystems",
				DeclaredWidth: 4, Order: 3, Section: "Measurements",
				Payload: document.MultiPicklistPayload{Selected: []string{"Conveyor", "Filler", "Capper"}}},
			{ID: "d4", Type: document.TypeTestStep, Label: "Power-on test",
				DeclaredWidth: 6, Order: 4, Section: "Execution",
				Payload: document.TestStepPayload{Expected: "Green lamp", Actual: "Green lamp"}},
			{ID: "d5", Type: document.TypeRadioHorizontal, Label: "Guard installed",
				DeclaredWidth: 6, Order: 5, Section: "Execution",
				Payload: document.ChoicePayload{Selected: "Yes"}},
			{ID: "d6", Type: document.TypeFreeText, Label: "Operator remarks",
				DeclaredWidth: 12, Order: 6, Section: "Execution",
				Payload: document.TextPayload{Value: "Line ran without interruption.\nMinor noise from capper resolved after adjustment."}},
			{ID: "d7", Type: document.TypeTable, Label: "Sensor calibration",
				DeclaredWidth: 12, Order: 7, Section: "Execution",
				Payload: document.TablePayload{Rows: [][]document.ProtocolElement{
					{
						{ID: "d7a", Type: document.TypeFreeText, Payload: document.TextPayload{Value: "Sensor"}},
						{ID: "d7b", Type: document.TypeFreeText, Payload: document.TextPayload{Value: "Reading"}},
					},
					{
						{ID: "d7c", Type: document.TypeFreeText, Payload: document.TextPayload{Value: "Temperature"}},
						{ID: "d7d", Type: document.TypeFreeText, Payload: document.TextPayload{Value: "21.4 C"}},
					},
				}}},
			{ID: "d8", Type: document.TypeTrainingEffectiveness, Label: "Operator training",
				DeclaredWidth: 12, Order: 8, Section: "Training",
				Payload: document.TrainingPayload{Score: 92, Threshold: 80}},
			{ID: "d9", Type: document.TypeFindingsSection, Label: "Findings",
				DeclaredWidth: 12, Order: 9,
				Payload: document.FindingsPayload{Findings: []document.Finding{
					{ID: "d9a", Title: "Capper noise", Severity: "Minor",
						Description: "Noise above baseline during first run.", RecordedAt: &recorded},
				}}},
			{ID: "d10", Type: document.TypeSignature, Label: "Quality approval",
				DeclaredWidth: 12, Order: 10,
				Payload: document.SignaturePayload{
					SignerName: "Alex Moreau", SignedAt: &signed, TZOffsetHours: 1, ConvertTZ: true,
				}},
		},
	}
}
