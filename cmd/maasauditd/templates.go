/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

const indexTmpl string = `<html>
  <head>
    <title>MAAS Audit Service</title>
    <style>
      .links, .build-info {
        display: flex;
      }
      h3, p {
        padding-right: 1em;
      }
      label {
        display: inline-block;
        width: 75px;
      }
      form label {
        margin: 10px;
      }
      form input {
        margin: 10px;
      }
    </style>
  </head>
  <body>
    <h1>MAAS Audit Service</h1>
    <div class="build-info">
      <p><b>build date:</b> {{ .Date }}</p>
      <p><b>revision:</b> {{ .GitRevision }}</p>
      <p><b>version:</b> {{ .GitVersion }}</p>
    </div>
    <div class="links">
      <h3><a href="metrics">Metrics</a></h3>
    </div>
    <form action="report/disks">
      <label>Profile:</label> <input type="text" name="profile" placeholder="MAAS profile name"><br>
      <label>Tag:</label> <input type="text" name="tag" placeholder="optional machine tag"><br>
      <label>Hostname:</label> <input type="text" name="hostname" placeholder="optional hostname"><br>
      <input type="submit" value="Disk Report">
    </form>
    <form action="report/nics">
      <label>Profile:</label> <input type="text" name="profile" placeholder="MAAS profile name"><br>
      <label>Tag:</label> <input type="text" name="tag" placeholder="optional machine tag"><br>
      <label>Hostname:</label> <input type="text" name="hostname" placeholder="optional hostname"><br>
      <input type="submit" value="NIC Report">
    </form>
  </body>
</html>`
