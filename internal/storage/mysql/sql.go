package mysql

const insertEventSQL = `
INSERT IGNORE INTO booking_events
  (id, kind, hotel, room, guest, check_in, check_out, total_price, detail, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Hotel names are matched ignoring case, the same way the ledger does.
const listEventsSQL = `
SELECT
  id, kind, hotel, room, guest, check_in, check_out, total_price, detail, created_at
FROM booking_events
WHERE hotel_lc = LOWER(?)
ORDER BY created_at DESC, id DESC
LIMIT ?
`
