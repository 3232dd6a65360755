package mysql

import "hotel_merge/internal/storage"

// hotel_id is binary-collated: supplier keys are case-sensitive.
const createHotelsSQL = `
CREATE TABLE IF NOT EXISTS hotels (
  hotel_id           VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  seq                INT          NOT NULL,
  destination_id     VARCHAR(255) NOT NULL,
  name               TEXT         NOT NULL,
  location           JSON         NOT NULL,
  description        TEXT         NOT NULL,
  images             JSON         NOT NULL,
  amenities          JSON         NULL,
  booking_conditions JSON         NULL,
  PRIMARY KEY (hotel_id),
  KEY idx_hotels_seq (seq),
  KEY idx_hotels_destination (destination_id, seq)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const deleteHotelsSQL = `DELETE FROM hotels`

const insertHotelsPrefix = "INSERT INTO hotels\n  (" + storage.SelectList + ")\nVALUES "

const insertRowPlaceholder = "(?,?,?,?,?,?,?,?,?)"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getHotelSQL = `
SELECT ` + storage.SelectList + `
FROM hotels
WHERE hotel_id = ?
`

// The destination filter is optional: a NULL first argument disables it.
const listHotelsSQL = `
SELECT ` + storage.SelectList + `
FROM hotels
WHERE (? IS NULL OR destination_id = ?)
  AND seq > ?
ORDER BY seq
LIMIT ?
`
