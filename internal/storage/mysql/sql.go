package mysql

// Schema is applied by Migrate; every statement is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS destinations (
  id            BIGINT       NOT NULL PRIMARY KEY,
  name          VARCHAR(128) NOT NULL,
  country       VARCHAR(64)  NOT NULL,
  state         VARCHAR(64)  NOT NULL DEFAULT '',
  city          VARCHAR(64)  NOT NULL DEFAULT '',
  description   TEXT         NOT NULL,
  image         VARCHAR(255) NULL,
  categories    JSON         NOT NULL,
  types         JSON         NOT NULL,
  price_min     DECIMAL(12,2) NOT NULL,
  price_max     DECIMAL(12,2) NOT NULL,
  avg_rating    DECIMAL(3,2) NOT NULL DEFAULT 0,
  package_count INT          NOT NULL DEFAULT 0,
  best_time     VARCHAR(128) NOT NULL DEFAULT '',
  highlights    JSON         NULL,
  updated_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS packages (
  id               BIGINT       NOT NULL PRIMARY KEY,
  title            VARCHAR(160) NOT NULL,
  description      TEXT         NOT NULL,
  destination      VARCHAR(128) NOT NULL,
  category         VARCHAR(64)  NOT NULL,
  type             VARCHAR(32)  NOT NULL,
  days             INT          NOT NULL,
  nights           INT          NOT NULL,
  original_price   DECIMAL(12,2) NOT NULL,
  discounted_price DECIMAL(12,2) NOT NULL,
  rating_avg       DECIMAL(3,2) NOT NULL DEFAULT 0,
  rating_count     INT          NOT NULL DEFAULT 0,
  features         JSON         NOT NULL,
  badge            VARCHAR(64)  NULL,
  featured         BOOLEAN      NOT NULL DEFAULT FALSE,
  image            VARCHAR(255) NULL,
  updated_at       TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS memberships (
  id               BIGINT       NOT NULL PRIMARY KEY,
  name             VARCHAR(64)  NOT NULL,
  tenure           VARCHAR(32)  NOT NULL,
  nights_per_year  INT          NOT NULL,
  original_price   DECIMAL(12,2) NOT NULL,
  discounted_price DECIMAL(12,2) NOT NULL,
  discount         VARCHAR(32)  NOT NULL DEFAULT '',
  is_popular       BOOLEAN      NOT NULL DEFAULT FALSE,
  features         JSON         NOT NULL,
  bonus_offer      VARCHAR(255) NOT NULL DEFAULT '',
  icon             VARCHAR(32)  NOT NULL DEFAULT '',
  resort_access    INT          NOT NULL DEFAULT 0,
  updated_at       TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

const upsertDestinationSQL = `
INSERT INTO destinations
  (id, name, country, state, city, description, image, categories, types,
   price_min, price_max, avg_rating, package_count, best_time, highlights)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name          = VALUES(name),
  country       = VALUES(country),
  state         = VALUES(state),
  city          = VALUES(city),
  description   = VALUES(description),
  image         = VALUES(image),
  categories    = VALUES(categories),
  types         = VALUES(types),
  price_min     = VALUES(price_min),
  price_max     = VALUES(price_max),
  avg_rating    = VALUES(avg_rating),
  package_count = VALUES(package_count),
  best_time     = VALUES(best_time),
  highlights    = VALUES(highlights)
`

const upsertPackageSQL = `
INSERT INTO packages
  (id, title, description, destination, category, type, days, nights,
   original_price, discounted_price, rating_avg, rating_count, features, badge, featured, image)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title            = VALUES(title),
  description      = VALUES(description),
  destination      = VALUES(destination),
  category         = VALUES(category),
  type             = VALUES(type),
  days             = VALUES(days),
  nights           = VALUES(nights),
  original_price   = VALUES(original_price),
  discounted_price = VALUES(discounted_price),
  rating_avg       = VALUES(rating_avg),
  rating_count     = VALUES(rating_count),
  features         = VALUES(features),
  badge            = VALUES(badge),
  featured         = VALUES(featured),
  image            = VALUES(image)
`

const upsertMembershipSQL = `
INSERT INTO memberships
  (id, name, tenure, nights_per_year, original_price, discounted_price, discount,
   is_popular, features, bonus_offer, icon, resort_access)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name             = VALUES(name),
  tenure           = VALUES(tenure),
  nights_per_year  = VALUES(nights_per_year),
  original_price   = VALUES(original_price),
  discounted_price = VALUES(discounted_price),
  discount         = VALUES(discount),
  is_popular       = VALUES(is_popular),
  features         = VALUES(features),
  bonus_offer      = VALUES(bonus_offer),
  icon             = VALUES(icon),
  resort_access    = VALUES(resort_access)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const destinationColumns = `
SELECT id, name, country, state, city, description, image, categories, types,
       price_min, price_max, avg_rating, package_count, best_time, highlights
FROM destinations`

const packageColumns = `
SELECT id, title, description, destination, category, type, days, nights,
       original_price, discounted_price, rating_avg, rating_count, features, badge, featured, image
FROM packages`

const membershipColumns = `
SELECT id, name, tenure, nights_per_year, original_price, discounted_price, discount,
       is_popular, features, bonus_offer, icon, resort_access
FROM memberships`
