// Package denoise measures how closely an estimated signal matches a clean
// reference, as used to score adaptive noise-reduction filters.
//
// Metrics:
//
//   - [SNR]: 10*log10(sum(r^2) / sum((r-s)^2)), guarded against empty
//     energy terms.
//   - [SISDR]: scale-invariant signal-to-distortion ratio. The estimate is
//     projected onto the reference; the residual counts as distortion.
//   - [LogSpectralDistance]: mean over Hann-windowed frames of the RMS dB
//     difference between the two power spectra.
//
// [IsSilent] and [HasInvalid] flag degenerate filter outputs (a filter that
// never left its warm-up, or one that diverged).
package denoise
