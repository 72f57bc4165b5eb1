// Package errors provides the structured error type used across the battle engine.
//
// Errors carry a Code, a message, an optional cause and metadata:
//
//	err := errors.IllegalActionf("combatant %s already acted this turn", id).
//	    WithMeta("turn", st.Turn)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save snapshot")
//	}
//
// # Battle error kinds
//
//   - IllegalAction: malformed or duplicate action submission. Fatal to the call.
//   - RuleViolation: a disallowed but well-formed action. The turn resolver
//     converts it to a failure event and it is never returned to callers.
//   - DataIntegrity: a catalog lookup miss. Fatal; the reference data is broken.
//
// Out-of-range computed values (stat stages, HP) are not errors at all. The
// engine clamps them, logs a warning and keeps going.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("species_id", input.SpeciesID, vb)
//	errors.ValidateRange("level", input.Level, 1, 100, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
